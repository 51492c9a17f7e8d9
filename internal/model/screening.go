package model

// Screening is a scheduled showing of a movie in a specific hall.  The
// scheduling service owns the record; the booking layer caches snapshots
// and must treat a snapshot as stale immediately after any mutating call.
// Attendees holds user identifiers and never contains duplicates.
//
// Fields:
//  ID             – scheduling identifier.
//  MovieID        – catalog movie being shown.
//  Date           – showing day as YYYY-MM-DD.
//  Time           – literal start time, e.g. "20:30".
//  Hall           – venue hall name.
//  Price          – ticket price for this showing.
//  MaxCapacity    – seats in the hall.
//  Attendees      – user IDs holding a seat (at most once each).
//  AvailableSeats – MaxCapacity minus len(Attendees), computed server-side.
//  CreatedAt      – record creation timestamp.
type Screening struct {
	ID             int64   `json:"id"`
	MovieID        int64   `json:"movieId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Hall           string  `json:"hall"`
	Price          float64 `json:"price"`
	MaxCapacity    int     `json:"maxCapacity"`
	Attendees      []int64 `json:"attendees"`
	AvailableSeats int     `json:"availableSeats"`
	CreatedAt      string  `json:"createdAt"`
}

// CreateScreeningRequest is the admin payload for scheduling a showing.
type CreateScreeningRequest struct {
	MovieID     int64   `json:"movieId"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Hall        string  `json:"hall"`
	Price       float64 `json:"price"`
	MaxCapacity int     `json:"maxCapacity"`
}

// UpdateScreeningRequest carries a partial screening update.  Nil fields
// are omitted so the scheduling service keeps their current values.
type UpdateScreeningRequest struct {
	MovieID     *int64   `json:"movieId,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Time        *string  `json:"time,omitempty"`
	Hall        *string  `json:"hall,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	MaxCapacity *int     `json:"maxCapacity,omitempty"`
}

// UserBooking is one entry of a user's booking history as returned by
// the scheduling service.  Movie is only populated when the scheduling
// service could resolve it against the catalog.
type UserBooking struct {
	ID        int64     `json:"id"`
	Screening Screening `json:"screening"`
	Movie     *Movie    `json:"movie,omitempty"`
	BookedAt  string    `json:"bookedAt"`
}
