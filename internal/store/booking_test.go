package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
)

// mockScheduling counts calls so tests can assert which preconditions
// short-circuited before any network activity.
type mockScheduling struct {
	mu sync.Mutex

	byMovieCalls  int
	joinCalls     int
	leaveCalls    int
	bookingsCalls int

	byMovieFn  func(movieID int64) ([]model.Screening, error)
	joinFn     func(id int64) (model.Screening, error)
	leaveFn    func(id int64) (model.Screening, error)
	bookingsFn func(userID int64) ([]model.UserBooking, error)
}

func (m *mockScheduling) ScreeningsByMovie(_ context.Context, movieID int64) ([]model.Screening, error) {
	m.mu.Lock()
	m.byMovieCalls++
	fn := m.byMovieFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(movieID)
}

func (m *mockScheduling) JoinScreening(_ context.Context, id int64) (model.Screening, error) {
	m.mu.Lock()
	m.joinCalls++
	fn := m.joinFn
	m.mu.Unlock()
	if fn == nil {
		return model.Screening{}, errors.New("unexpected join")
	}
	return fn(id)
}

func (m *mockScheduling) LeaveScreening(_ context.Context, id int64) (model.Screening, error) {
	m.mu.Lock()
	m.leaveCalls++
	fn := m.leaveFn
	m.mu.Unlock()
	if fn == nil {
		return model.Screening{}, errors.New("unexpected leave")
	}
	return fn(id)
}

func (m *mockScheduling) UserBookings(_ context.Context, userID int64) ([]model.UserBooking, error) {
	m.mu.Lock()
	m.bookingsCalls++
	fn := m.bookingsFn
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(userID)
}

func (m *mockScheduling) calls() (byMovie, join, leave, bookings int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byMovieCalls, m.joinCalls, m.leaveCalls, m.bookingsCalls
}

func movieFixture(id int64) model.Movie {
	return model.Movie{ID: id, Title: "Movie", Status: model.MovieNowPlaying}
}

func screeningFixture(id int64, attendees []int64) model.Screening {
	return model.Screening{
		ID:             id,
		MovieID:        1,
		Date:           "2026-03-14",
		Time:           "20:30",
		Hall:           "A",
		Price:          12.5,
		MaxCapacity:    10,
		Attendees:      attendees,
		AvailableSeats: 10 - len(attendees),
	}
}

// storeWithSelection loads one screening and selects it.
func storeWithSelection(t *testing.T, mock *mockScheduling, sel model.Screening) *BookingStore {
	t.Helper()
	mock.byMovieFn = func(int64) ([]model.Screening, error) {
		return []model.Screening{sel}, nil
	}
	s := NewBookingStore(mock, nil)
	s.SetMovie(context.Background(), movieFixture(1))
	s.SelectScreening(sel)
	return s
}

func TestSetMovieLoadsScreeningsAndClearsFlow(t *testing.T) {
	mock := &mockScheduling{}
	mock.byMovieFn = func(movieID int64) ([]model.Screening, error) {
		return []model.Screening{screeningFixture(5, nil)}, nil
	}
	s := NewBookingStore(mock, nil)
	s.SelectScreening(screeningFixture(99, nil))

	s.SetMovie(context.Background(), movieFixture(1))

	st := s.Snapshot()
	require.NotNil(t, st.Movie)
	assert.Equal(t, int64(1), st.Movie.ID)
	assert.Nil(t, st.SelectedScreening, "prior selection must be cleared")
	assert.False(t, st.BookingSuccess)
	assert.Empty(t, st.Error)
	assert.False(t, st.IsLoading)
	require.Len(t, st.Screenings, 1)
	assert.Equal(t, int64(5), st.Screenings[0].ID)
}

func TestLoadScreeningsFailureEmptiesList(t *testing.T) {
	mock := &mockScheduling{}
	mock.byMovieFn = func(int64) ([]model.Screening, error) {
		return []model.Screening{screeningFixture(5, nil)}, nil
	}
	s := NewBookingStore(mock, nil)
	s.SetMovie(context.Background(), movieFixture(1))
	require.Len(t, s.Snapshot().Screenings, 1)

	mock.byMovieFn = func(int64) ([]model.Screening, error) {
		return nil, &gateway.APIError{Message: "Server error. Please try again later.", Status: 500}
	}
	s.LoadScreenings(context.Background(), 1)

	st := s.Snapshot()
	assert.Empty(t, st.Screenings, "failed load replaces, never merges")
	assert.Equal(t, "Server error. Please try again later.", st.Error)
	assert.False(t, st.IsLoading)
}

func TestJoinPreconditionsShortCircuit(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, mock *mockScheduling) *BookingStore
		wantErr string
	}{
		{
			name: "no screening selected",
			prepare: func(t *testing.T, mock *mockScheduling) *BookingStore {
				return NewBookingStore(mock, nil)
			},
			wantErr: msgNoSelection,
		},
		{
			name: "user already joined",
			prepare: func(t *testing.T, mock *mockScheduling) *BookingStore {
				return storeWithSelection(t, mock, screeningFixture(5, []int64{42}))
			},
			wantErr: msgAlreadyJoined,
		},
		{
			name: "screening full",
			prepare: func(t *testing.T, mock *mockScheduling) *BookingStore {
				return storeWithSelection(t, mock, screeningFixture(5, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
			},
			wantErr: msgScreeningFull,
		},
		{
			name: "already-joined wins over full",
			prepare: func(t *testing.T, mock *mockScheduling) *BookingStore {
				return storeWithSelection(t, mock, screeningFixture(5, []int64{42, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
			},
			wantErr: msgAlreadyJoined,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScheduling{}
			s := tt.prepare(t, mock)

			ok := s.JoinScreening(context.Background(), 42)

			assert.False(t, ok)
			assert.Equal(t, tt.wantErr, s.Snapshot().Error)
			_, join, _, _ := mock.calls()
			assert.Zero(t, join, "precondition failures must not reach the network")
		})
	}
}

func TestJoinSuccessAdoptsServerSnapshot(t *testing.T) {
	mock := &mockScheduling{}
	selected := screeningFixture(5, []int64{1, 2, 3})
	// The server's answer differs from what a local decrement would
	// produce: another booking landed in between.
	authoritative := screeningFixture(5, []int64{1, 2, 3, 99, 42})
	mock.joinFn = func(id int64) (model.Screening, error) {
		return authoritative, nil
	}
	s := storeWithSelection(t, mock, selected)

	ok := s.JoinScreening(context.Background(), 42)
	require.True(t, ok)

	st := s.Snapshot()
	assert.True(t, st.BookingSuccess)
	assert.Empty(t, st.Error)
	require.NotNil(t, st.SelectedScreening)
	assert.Equal(t, authoritative, *st.SelectedScreening, "selection must be the server payload")
	require.Len(t, st.Screenings, 1)
	assert.Equal(t, authoritative, st.Screenings[0], "list entry and selection must match")
	assert.Equal(t, authoritative.MaxCapacity-len(authoritative.Attendees), st.Screenings[0].AvailableSeats)
}

func TestJoinFailureKeepsPriorState(t *testing.T) {
	mock := &mockScheduling{}
	selected := screeningFixture(5, []int64{1})
	mock.joinFn = func(id int64) (model.Screening, error) {
		return model.Screening{}, &gateway.APIError{Message: "screening is full", Status: 409}
	}
	s := storeWithSelection(t, mock, selected)

	ok := s.JoinScreening(context.Background(), 42)

	assert.False(t, ok)
	st := s.Snapshot()
	assert.Equal(t, "screening is full", st.Error)
	assert.False(t, st.BookingSuccess)
	require.NotNil(t, st.SelectedScreening, "selection is retained on failure")
	assert.Equal(t, selected, *st.SelectedScreening)
}

func TestJoinTransportFailureUsesFallbackMessage(t *testing.T) {
	mock := &mockScheduling{}
	mock.joinFn = func(id int64) (model.Screening, error) {
		return model.Screening{}, errors.New("dial tcp: connection refused")
	}
	s := storeWithSelection(t, mock, screeningFixture(5, nil))

	assert.False(t, s.JoinScreening(context.Background(), 42))
	assert.Equal(t, "Unable to book this screening.", s.Snapshot().Error)
}

func TestLeaveMirrorsJoinWithoutTouchingBookingSuccess(t *testing.T) {
	mock := &mockScheduling{}
	joined := screeningFixture(5, []int64{42})
	mock.joinFn = func(id int64) (model.Screening, error) { return joined, nil }
	s := storeWithSelection(t, mock, screeningFixture(5, nil))
	require.True(t, s.JoinScreening(context.Background(), 42))

	left := screeningFixture(5, nil)
	mock.leaveFn = func(id int64) (model.Screening, error) { return left, nil }
	require.True(t, s.LeaveScreening(context.Background()))

	st := s.Snapshot()
	assert.True(t, st.BookingSuccess, "leave must not clear the booked flag")
	require.NotNil(t, st.SelectedScreening)
	assert.Equal(t, left, *st.SelectedScreening)
	assert.Equal(t, left, st.Screenings[0])
}

func TestLeaveWithoutSelection(t *testing.T) {
	mock := &mockScheduling{}
	s := NewBookingStore(mock, nil)

	assert.False(t, s.LeaveScreening(context.Background()))
	assert.NotEmpty(t, s.Snapshot().Error)
	_, _, leave, _ := mock.calls()
	assert.Zero(t, leave)
}

func TestUserBookingsFailureReturnsEmpty(t *testing.T) {
	mock := &mockScheduling{}
	mock.bookingsFn = func(userID int64) ([]model.UserBooking, error) {
		return nil, &gateway.APIError{Message: "Server error. Please try again later.", Status: 500}
	}
	s := NewBookingStore(mock, nil)

	out := s.UserBookings(context.Background(), 42)

	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, "Server error. Please try again later.", s.Snapshot().Error)
}

func TestOutOfOrderLoadsDiscardStraggler(t *testing.T) {
	mock := &mockScheduling{}
	movieA := movieFixture(1)
	movieB := movieFixture(2)
	screeningsA := []model.Screening{screeningFixture(10, nil)}
	screeningsB := []model.Screening{screeningFixture(20, nil)}

	releaseA := make(chan struct{})
	aStarted := make(chan struct{})
	mock.byMovieFn = func(movieID int64) ([]model.Screening, error) {
		if movieID == movieA.ID {
			close(aStarted)
			<-releaseA // hold A's response until B has fully landed
			return screeningsA, nil
		}
		return screeningsB, nil
	}

	s := NewBookingStore(mock, nil)

	done := make(chan struct{})
	go func() {
		s.SetMovie(context.Background(), movieA)
		close(done)
	}()
	<-aStarted

	s.SetMovie(context.Background(), movieB)
	close(releaseA)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("straggling load never completed")
	}

	st := s.Snapshot()
	require.NotNil(t, st.Movie)
	assert.Equal(t, movieB.ID, st.Movie.ID, "final movie must be B")
	require.Len(t, st.Screenings, 1)
	assert.Equal(t, screeningsB[0].ID, st.Screenings[0].ID, "screenings must be B's, never A's")
	assert.False(t, st.IsLoading)
}

func TestJoinCompletionAfterNewMovieIsDiscarded(t *testing.T) {
	mock := &mockScheduling{}
	movieB := movieFixture(2)
	screeningsB := []model.Screening{screeningFixture(20, nil)}

	releaseJoin := make(chan struct{})
	joinStarted := make(chan struct{})
	mock.joinFn = func(id int64) (model.Screening, error) {
		close(joinStarted)
		<-releaseJoin // hold the join response until movie B has landed
		return screeningFixture(5, []int64{42}), nil
	}
	s := storeWithSelection(t, mock, screeningFixture(5, nil))

	done := make(chan bool, 1)
	go func() {
		done <- s.JoinScreening(context.Background(), 42)
	}()
	<-joinStarted

	mock.mu.Lock()
	mock.byMovieFn = func(int64) ([]model.Screening, error) { return screeningsB, nil }
	mock.mu.Unlock()
	s.SetMovie(context.Background(), movieB)
	close(releaseJoin)

	select {
	case ok := <-done:
		assert.True(t, ok, "the seat was booked server-side")
	case <-time.After(2 * time.Second):
		t.Fatal("straggling join never completed")
	}

	st := s.Snapshot()
	require.NotNil(t, st.Movie)
	assert.Equal(t, movieB.ID, st.Movie.ID)
	assert.Nil(t, st.SelectedScreening, "stale join snapshot must not resurrect a selection")
	assert.False(t, st.BookingSuccess)
	assert.Empty(t, st.Error)
	require.Len(t, st.Screenings, 1)
	assert.Equal(t, screeningsB[0].ID, st.Screenings[0].ID)
}

func TestResetReturnsToEmpty(t *testing.T) {
	mock := &mockScheduling{}
	mock.byMovieFn = func(int64) ([]model.Screening, error) {
		return []model.Screening{screeningFixture(5, nil)}, nil
	}
	s := NewBookingStore(mock, nil)
	s.SetMovie(context.Background(), movieFixture(1))
	s.SelectScreening(screeningFixture(5, nil))

	s.Reset()

	assert.Equal(t, BookingState{}, s.Snapshot())
	assert.Zero(t, s.AvailableSeats())
	assert.Zero(t, s.Price())
}

func TestDerivedValuesFollowSelection(t *testing.T) {
	mock := &mockScheduling{}
	s := NewBookingStore(mock, nil)
	assert.Zero(t, s.AvailableSeats())
	assert.Zero(t, s.Price())

	s.SelectScreening(screeningFixture(5, []int64{1, 2, 3}))
	assert.Equal(t, 7, s.AvailableSeats())
	assert.Equal(t, 12.5, s.Price())
}

func TestSubscribeSignalsOnChange(t *testing.T) {
	mock := &mockScheduling{}
	s := NewBookingStore(mock, nil)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SelectScreening(screeningFixture(5, nil))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}
