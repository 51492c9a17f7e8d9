// Package events publishes booking domain events to RabbitMQ.  Errors
// are logged and returned so callers can ignore failures without
// interrupting the booking flow.
package events

// BookingConfirmedEvent is published after a join completes.  It holds
// what the client knows at confirmation time so downstream consumers
// can log, notify or feed analytics without calling the services back.
type BookingConfirmedEvent struct {
	UserID         int64   `json:"user_id"`
	ScreeningID    int64   `json:"screening_id"`
	MovieID        int64   `json:"movie_id"`
	MovieTitle     string  `json:"movie_title"`
	Hall           string  `json:"hall"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"available_seats"`
	ConfirmedAt    string  `json:"confirmed_at"`
}
