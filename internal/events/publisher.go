package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// queueName is the durable queue booking confirmations land on.
const queueName = "booking.confirmed"

// Publisher sends booking events to a RabbitMQ broker.  A nil Publisher
// is valid and publishes nothing, so wiring stays unconditional at the
// call sites.
type Publisher struct {
	url string
	log *logrus.Entry
}

// NewPublisher returns a Publisher for the given AMQP URL, or nil when
// the URL is empty (event publishing disabled).
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{
		url: url,
		log: logrus.WithField("component", "events"),
	}
}

// PublishBookingConfirmed delivers the event to the booking.confirmed
// queue.  The connection is established per publish: confirmations are
// rare enough that holding a channel open buys nothing, and a broker
// outage then only costs the one event.  Messages are persistent and
// the queue declaration is idempotent.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.WithError(err).Warn("amqp dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.WithError(err).Warn("amqp channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		p.log.WithError(err).Warn("amqp queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).Warn("marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.WithError(err).Warn("amqp publish failed")
		return err
	}
	return nil
}
