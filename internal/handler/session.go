package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/catalog"
	"github.com/iliyamo/cinelux-booking/internal/model"
	"github.com/iliyamo/cinelux-booking/internal/store"
)

// SessionHandler exposes the booking flow to the UI.  Every endpoint is
// a thin bridge: validate the request, invoke one store action, return
// the resulting snapshot.  The stores own all booking rules; nothing is
// decided here.
type SessionHandler struct {
	Booking *store.BookingStore
	Auth    *store.AuthStore
	Catalog *catalog.Client
}

// NewSessionHandler constructs a SessionHandler.  All dependencies must
// be non-nil.
func NewSessionHandler(booking *store.BookingStore, auth *store.AuthStore, cat *catalog.Client) *SessionHandler {
	if booking == nil || auth == nil || cat == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{Booking: booking, Auth: auth, Catalog: cat}
}

// sessionResponse is the booking snapshot plus the derived values the
// UI renders next to the selection.
type sessionResponse struct {
	Movie             *model.Movie      `json:"movie"`
	Screenings        []model.Screening `json:"screenings"`
	SelectedScreening *model.Screening  `json:"selectedScreening"`
	IsLoading         bool              `json:"isLoading"`
	Error             string            `json:"error,omitempty"`
	BookingSuccess    bool              `json:"bookingSuccess"`
	AvailableSeats    int               `json:"availableSeats"`
	Price             float64           `json:"price"`
}

func (h *SessionHandler) snapshot() sessionResponse {
	st := h.Booking.Snapshot()
	return sessionResponse{
		Movie:             st.Movie,
		Screenings:        st.Screenings,
		SelectedScreening: st.SelectedScreening,
		IsLoading:         st.IsLoading,
		Error:             st.Error,
		BookingSuccess:    st.BookingSuccess,
		AvailableSeats:    h.Booking.AvailableSeats(),
		Price:             h.Booking.Price(),
	}
}

// GetSession handles GET /v1/session.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// SetMovie handles POST /v1/session/movie.  It resolves the movie
// against the catalog, then starts the booking flow (which loads the
// movie's screenings).
func (h *SessionHandler) SetMovie(c echo.Context) error {
	var body struct {
		MovieID int64 `json:"movieId"`
	}
	if err := c.Bind(&body); err != nil || body.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movieId is required"})
	}
	movie, err := h.Catalog.MovieByID(c.Request().Context(), body.MovieID)
	if err != nil {
		return serviceError(c, err, "movie lookup failed")
	}
	h.Booking.SetMovie(c.Request().Context(), movie)
	return c.JSON(http.StatusOK, h.snapshot())
}

// SelectScreening handles POST /v1/session/screening.  The screening
// must be one of the loaded snapshots for the current movie.
func (h *SessionHandler) SelectScreening(c echo.Context) error {
	var body struct {
		ScreeningID int64 `json:"screeningId"`
	}
	if err := c.Bind(&body); err != nil || body.ScreeningID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screeningId is required"})
	}
	st := h.Booking.Snapshot()
	for _, s := range st.Screenings {
		if s.ID == body.ScreeningID {
			h.Booking.SelectScreening(s)
			return c.JSON(http.StatusOK, h.snapshot())
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not in the current session"})
}

// Join handles POST /v1/session/join.  The seat goes to the signed-in
// user; anonymous sessions are rejected before touching the store.
func (h *SessionHandler) Join(c echo.Context) error {
	auth := h.Auth.Snapshot()
	if !auth.IsAuthenticated {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "sign in to book a screening"})
	}
	ok := h.Booking.JoinScreening(c.Request().Context(), auth.User.ID)
	return c.JSON(http.StatusOK, echo.Map{"booked": ok, "session": h.snapshot()})
}

// Leave handles POST /v1/session/leave.
func (h *SessionHandler) Leave(c echo.Context) error {
	auth := h.Auth.Snapshot()
	if !auth.IsAuthenticated {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "sign in to manage bookings"})
	}
	ok := h.Booking.LeaveScreening(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"cancelled": ok, "session": h.snapshot()})
}

// Bookings handles GET /v1/bookings: the signed-in user's history.
func (h *SessionHandler) Bookings(c echo.Context) error {
	auth := h.Auth.Snapshot()
	if !auth.IsAuthenticated {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "sign in to view bookings"})
	}
	bookings := h.Booking.UserBookings(c.Request().Context(), auth.User.ID)
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// Reset handles POST /v1/session/reset.
func (h *SessionHandler) Reset(c echo.Context) error {
	h.Booking.Reset()
	return c.JSON(http.StatusOK, h.snapshot())
}

// ClearError handles DELETE /v1/session/error.
func (h *SessionHandler) ClearError(c echo.Context) error {
	h.Booking.ClearError()
	return c.JSON(http.StatusOK, h.snapshot())
}
