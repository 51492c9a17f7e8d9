// Package scheduling is the accessor for the screening service: the
// screening catalog, the join/leave mutation endpoints and the booking
// history.  Like the other accessors it never interprets failures;
// errors bubble raw to the store layer.
package scheduling

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
)

// Client exposes the scheduling endpoints.
type Client struct {
	gw *gateway.Client
}

// New returns a scheduling accessor over the given gateway.
func New(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Screenings lists every screening.
func (c *Client) Screenings(ctx context.Context) ([]model.Screening, error) {
	var out []model.Screening
	err := c.gw.Get(ctx, "/api/screenings", &out, false)
	return out, err
}

// ScreeningByID fetches a single screening snapshot.
func (c *Client) ScreeningByID(ctx context.Context, id int64) (model.Screening, error) {
	var s model.Screening
	err := c.gw.Get(ctx, fmt.Sprintf("/api/screenings/%d", id), &s, false)
	return s, err
}

// ScreeningsByMovie lists the screenings scheduled for one movie.
func (c *Client) ScreeningsByMovie(ctx context.Context, movieID int64) ([]model.Screening, error) {
	var out []model.Screening
	err := c.gw.Get(ctx, fmt.Sprintf("/api/screenings/movie/%d", movieID), &out, false)
	return out, err
}

// CreateScreening schedules a showing.  Admin only.
func (c *Client) CreateScreening(ctx context.Context, req model.CreateScreeningRequest) (model.Screening, error) {
	var s model.Screening
	err := c.gw.Post(ctx, "/api/screenings", req, &s, true)
	return s, err
}

// UpdateScreening applies a partial update.  Admin only.
func (c *Client) UpdateScreening(ctx context.Context, id int64, req model.UpdateScreeningRequest) (model.Screening, error) {
	var s model.Screening
	err := c.gw.Put(ctx, fmt.Sprintf("/api/screenings/%d", id), req, &s, true)
	return s, err
}

// DeleteScreening removes a screening.  Admin only.
func (c *Client) DeleteScreening(ctx context.Context, id int64) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/api/screenings/%d", id), nil, true)
}

// JoinScreening books one seat on the screening for the authenticated
// user and returns the server's post-join snapshot, which is the source
// of truth for the new attendee set and seat count.  The service does
// not deduplicate joins itself, so each call carries a fresh
// Idempotency-Key header a future server revision can honor.
func (c *Client) JoinScreening(ctx context.Context, id int64) (model.Screening, error) {
	var s model.Screening
	err := c.gw.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/screenings/%d/join", id),
		Out:    &s,
		Auth:   true,
		Header: http.Header{"Idempotency-Key": []string{uuid.NewString()}},
	})
	return s, err
}

// LeaveScreening cancels the authenticated user's booking and returns
// the post-leave snapshot.
func (c *Client) LeaveScreening(ctx context.Context, id int64) (model.Screening, error) {
	var s model.Screening
	err := c.gw.Delete(ctx, fmt.Sprintf("/api/screenings/%d/leave", id), &s, true)
	return s, err
}

// UserBookings lists a user's booking history.
func (c *Client) UserBookings(ctx context.Context, userID int64) ([]model.UserBooking, error) {
	var out []model.UserBooking
	err := c.gw.Get(ctx, fmt.Sprintf("/api/users/%d/bookings", userID), &out, true)
	return out, err
}
