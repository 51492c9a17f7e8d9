// Package store holds the client-side session state: the booking flow
// (movie, screenings, selection, booking outcome) and the identity
// session.  Stores are the only place state mutates; consumers read
// copy-out snapshots and subscribe to change notifications instead of
// touching the state directly.  Store actions never propagate errors:
// each public action catches at its boundary, maps the failure to a
// user-facing message and reports success as a boolean or a best-effort
// empty result.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinelux-booking/internal/events"
	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
	"github.com/iliyamo/cinelux-booking/internal/scheduling"
)

// SchedulingAPI is the slice of the scheduling accessor the booking
// store depends on.  *scheduling.Client satisfies it; tests substitute
// mocks with call counters.
type SchedulingAPI interface {
	ScreeningsByMovie(ctx context.Context, movieID int64) ([]model.Screening, error)
	JoinScreening(ctx context.Context, id int64) (model.Screening, error)
	LeaveScreening(ctx context.Context, id int64) (model.Screening, error)
	UserBookings(ctx context.Context, userID int64) ([]model.UserBooking, error)
}

// BookingState is the snapshot consumers read.  Meaningful shapes:
// empty (no movie), screenings loading, screening selected, join in
// flight, booked (BookingSuccess) or join failed (Error set, selection
// retained).
type BookingState struct {
	Movie             *model.Movie
	Screenings        []model.Screening
	SelectedScreening *model.Screening
	IsLoading         bool
	Error             string
	BookingSuccess    bool
}

// Local validation messages for join preconditions.  These fail fast
// before any network call.
const (
	msgNoSelection   = "Please select a screening first."
	msgAlreadyJoined = "You have already booked this screening."
	msgScreeningFull = "This screening is sold out."
)

// BookingStore is the booking-flow state machine.  One instance serves
// one user session; construct per session rather than sharing a global.
type BookingStore struct {
	mu      sync.Mutex
	state   BookingState
	loadGen uint64

	api    SchedulingAPI
	events *events.Publisher
	log    *logrus.Entry
	notes  notifier
}

// NewBookingStore returns an empty booking store.  pub may be nil when
// booking events are disabled.
func NewBookingStore(api SchedulingAPI, pub *events.Publisher) *BookingStore {
	return &BookingStore{
		api:    api,
		events: pub,
		log:    logrus.WithField("component", "store.booking"),
	}
}

// Snapshot returns a copy of the current state.  The screenings slice
// is cloned so a caller iterating it cannot race a replacement.
func (s *BookingStore) Snapshot() BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

func (s *BookingStore) copyStateLocked() BookingState {
	out := s.state
	if s.state.Movie != nil {
		m := *s.state.Movie
		out.Movie = &m
	}
	if s.state.SelectedScreening != nil {
		sel := *s.state.SelectedScreening
		out.SelectedScreening = &sel
	}
	out.Screenings = append([]model.Screening(nil), s.state.Screenings...)
	return out
}

// Subscribe registers for change notifications.  The channel receives a
// coalesced signal after every state change; call the cancel func when
// done listening.
func (s *BookingStore) Subscribe() (<-chan struct{}, func()) {
	return s.notes.subscribe()
}

// AvailableSeats returns the seat count of the current selection, zero
// when nothing is selected.  Recomputed on every call.
func (s *BookingStore) AvailableSeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedScreening == nil {
		return 0
	}
	return s.state.SelectedScreening.AvailableSeats
}

// Price returns the ticket price of the current selection, zero when
// nothing is selected.
func (s *BookingStore) Price() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedScreening == nil {
		return 0
	}
	return s.state.SelectedScreening.Price
}

// SetMovie starts a booking flow for the given movie: prior selection,
// error and booking outcome are cleared and the movie's screenings are
// loaded.  When SetMovie is called again before an earlier load
// finishes, the straggler's result is discarded (generation check), so
// the state always reflects the latest movie.
func (s *BookingStore) SetMovie(ctx context.Context, movie model.Movie) {
	s.mu.Lock()
	m := movie
	s.state.Movie = &m
	s.state.Screenings = nil
	s.state.SelectedScreening = nil
	s.state.Error = ""
	s.state.BookingSuccess = false
	s.state.IsLoading = true
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()
	s.notes.notify()

	s.fetchScreenings(ctx, movie.ID, gen)
}

// LoadScreenings reloads the screening list for a movie without
// touching the rest of the flow.  The same generation guard applies.
func (s *BookingStore) LoadScreenings(ctx context.Context, movieID int64) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()
	s.notes.notify()

	s.fetchScreenings(ctx, movieID, gen)
}

// fetchScreenings performs the network call outside the lock, then
// applies the result only if no newer load has been issued since.
// A superseded completion leaves IsLoading alone: the newer request
// owns that flag now.
func (s *BookingStore) fetchScreenings(ctx context.Context, movieID int64, gen uint64) {
	list, err := s.api.ScreeningsByMovie(ctx, movieID)

	s.mu.Lock()
	if gen != s.loadGen {
		s.mu.Unlock()
		s.log.WithField("movie_id", movieID).Debug("discarding stale screenings load")
		return
	}
	if err != nil {
		s.state.Error = userMessage(err, "Unable to load screenings for this movie.")
		s.state.Screenings = nil
	} else {
		s.state.Screenings = list
	}
	s.state.IsLoading = false
	s.mu.Unlock()
	s.notes.notify()
}

// SelectScreening records the user's choice.  Purely local: no network
// call, prior error cleared.
func (s *BookingStore) SelectScreening(screening model.Screening) {
	s.mu.Lock()
	sel := screening
	s.state.SelectedScreening = &sel
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()
}

// JoinScreening books a seat for the user on the selected screening.
// Preconditions run in order (selection exists, user not already an
// attendee, seats remain) and the first failure short-circuits with a
// local error and no network call.  On success the server's post-join
// snapshot replaces both the list entry and the selection (the server
// owns the attendee set; nothing is decremented locally) and
// BookingSuccess is set.  On failure the server message is surfaced and
// prior state is left untouched.  A completion that lands after SetMovie
// or Reset has moved the flow on is discarded like a stale screenings
// load; the return value still reports the server outcome.
func (s *BookingStore) JoinScreening(ctx context.Context, userID int64) bool {
	s.mu.Lock()
	sel := s.state.SelectedScreening
	reject := ""
	switch {
	case sel == nil:
		reject = msgNoSelection
	case scheduling.HasUserJoined(*sel, userID):
		reject = msgAlreadyJoined
	case scheduling.IsScreeningFull(*sel):
		reject = msgScreeningFull
	}
	if reject != "" {
		s.state.Error = reject
		s.mu.Unlock()
		s.notes.notify()
		return false
	}
	screeningID := sel.ID
	s.state.IsLoading = true
	s.state.Error = ""
	gen := s.loadGen
	s.mu.Unlock()
	s.notes.notify()

	updated, err := s.api.JoinScreening(ctx, screeningID)

	s.mu.Lock()
	if gen != s.loadGen {
		s.mu.Unlock()
		s.log.WithField("screening_id", screeningID).Debug("discarding stale join completion")
		return err == nil
	}
	s.state.IsLoading = false
	if err != nil {
		s.state.Error = userMessage(err, "Unable to book this screening.")
		s.mu.Unlock()
		s.notes.notify()
		return false
	}
	s.applySnapshotLocked(updated)
	s.state.BookingSuccess = true
	movie := s.state.Movie
	s.mu.Unlock()
	s.notes.notify()

	s.publishConfirmed(userID, movie, updated)
	return true
}

// LeaveScreening cancels the user's booking on the selected screening.
// Mirrors the join success path (server snapshot replaces list entry
// and selection, stale completions discarded) without touching
// BookingSuccess.
func (s *BookingStore) LeaveScreening(ctx context.Context) bool {
	s.mu.Lock()
	sel := s.state.SelectedScreening
	if sel == nil {
		s.state.Error = "No screening selected."
		s.mu.Unlock()
		s.notes.notify()
		return false
	}
	screeningID := sel.ID
	s.state.IsLoading = true
	s.state.Error = ""
	gen := s.loadGen
	s.mu.Unlock()
	s.notes.notify()

	updated, err := s.api.LeaveScreening(ctx, screeningID)

	s.mu.Lock()
	if gen != s.loadGen {
		s.mu.Unlock()
		s.log.WithField("screening_id", screeningID).Debug("discarding stale leave completion")
		return err == nil
	}
	s.state.IsLoading = false
	if err != nil {
		s.state.Error = userMessage(err, "Unable to cancel this booking.")
		s.mu.Unlock()
		s.notes.notify()
		return false
	}
	s.applySnapshotLocked(updated)
	s.mu.Unlock()
	s.notes.notify()
	return true
}

// applySnapshotLocked adopts a server screening snapshot: the matching
// list entry (by identity) is replaced and the selection updated.
func (s *BookingStore) applySnapshotLocked(updated model.Screening) {
	for i := range s.state.Screenings {
		if s.state.Screenings[i].ID == updated.ID {
			s.state.Screenings[i] = updated
			break
		}
	}
	sel := updated
	s.state.SelectedScreening = &sel
}

// UserBookings fetches the user's booking history with its own
// loading/error cycle.  Failures surface in Error and yield an empty
// list rather than propagating.
func (s *BookingStore) UserBookings(ctx context.Context, userID int64) []model.UserBooking {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()

	bookings, err := s.api.UserBookings(ctx, userID)

	s.mu.Lock()
	s.state.IsLoading = false
	if err != nil {
		s.state.Error = userMessage(err, "Unable to load your bookings.")
		bookings = nil
	}
	s.mu.Unlock()
	s.notes.notify()

	if bookings == nil {
		return []model.UserBooking{}
	}
	return bookings
}

// Reset returns the store to the empty state unconditionally.
func (s *BookingStore) Reset() {
	s.mu.Lock()
	s.state = BookingState{}
	s.loadGen++ // orphan any in-flight load
	s.mu.Unlock()
	s.notes.notify()
}

// ClearError clears the last error message.
func (s *BookingStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notes.notify()
}

// publishConfirmed emits the booking-confirmed event in the background.
// Publishing is best-effort; the publisher logs its own failures.
func (s *BookingStore) publishConfirmed(userID int64, movie *model.Movie, screening model.Screening) {
	if s.events == nil {
		return
	}
	event := events.BookingConfirmedEvent{
		UserID:         userID,
		ScreeningID:    screening.ID,
		MovieID:        screening.MovieID,
		Hall:           screening.Hall,
		Date:           screening.Date,
		Time:           screening.Time,
		Price:          screening.Price,
		AvailableSeats: screening.AvailableSeats,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if movie != nil {
		event.MovieTitle = movie.Title
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.events.PublishBookingConfirmed(ctx, event)
	}()
}

// userMessage maps an accessor error to a user-facing string: service
// responses carry their normalized message, transport failures fall
// back to the action-specific wording.
func userMessage(err error, fallback string) string {
	if apiErr, ok := gateway.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
