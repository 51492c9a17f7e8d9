package model

// Genre is a single movie genre as served by the catalog service.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie represents a catalog entry.  Movies are immutable once fetched;
// the booking layer only references them and never mutates the fields.
// Status distinguishes titles currently shown from announced ones.
//
// Fields:
//  ID            – catalog identifier.
//  Title         – localized display title.
//  OriginalTitle – title in the original language.
//  Overview      – synopsis text.
//  PosterURL     – poster image address, nil when the catalog has none.
//  BackdropURL   – backdrop image address, nil when the catalog has none.
//  ReleaseDate   – release day as YYYY-MM-DD.
//  Runtime       – length in minutes.
//  VoteAverage   – aggregated rating out of ten.
//  VoteCount     – number of ratings behind VoteAverage.
//  Genres        – genres attached by the catalog.
//  Status        – "now_playing" or "upcoming".
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"originalTitle"`
	Overview      string  `json:"overview"`
	PosterURL     *string `json:"posterUrl"`
	BackdropURL   *string `json:"backdropUrl"`
	ReleaseDate   string  `json:"releaseDate"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"voteAverage"`
	VoteCount     int     `json:"voteCount"`
	Genres        []Genre `json:"genres"`
	Status        string  `json:"status"`
}

// Movie lifecycle states used by the Status field.
const (
	MovieNowPlaying = "now_playing"
	MovieUpcoming   = "upcoming"
)

// MovieList is the catalog's paginated listing envelope.
type MovieList struct {
	Movies       []Movie `json:"movies"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
}

// CreateMovieRequest is the admin payload for adding a catalog entry.
// The catalog validates permissions against the user service.
type CreateMovieRequest struct {
	Title         string  `json:"title"`
	OriginalTitle string  `json:"originalTitle"`
	Overview      string  `json:"overview"`
	PosterURL     string  `json:"posterUrl,omitempty"`
	BackdropURL   string  `json:"backdropUrl,omitempty"`
	ReleaseDate   string  `json:"releaseDate"`
	Runtime       int     `json:"runtime"`
	GenreIDs      []int64 `json:"genreIds"`
	Status        string  `json:"status"`
}

// UpdateMovieRequest carries a partial catalog update.  Nil fields are
// omitted from the body so the catalog keeps their current values.
type UpdateMovieRequest struct {
	Title         *string  `json:"title,omitempty"`
	OriginalTitle *string  `json:"originalTitle,omitempty"`
	Overview      *string  `json:"overview,omitempty"`
	PosterURL     *string  `json:"posterUrl,omitempty"`
	BackdropURL   *string  `json:"backdropUrl,omitempty"`
	ReleaseDate   *string  `json:"releaseDate,omitempty"`
	Runtime       *int     `json:"runtime,omitempty"`
	GenreIDs      []int64  `json:"genreIds,omitempty"`
	Status        *string  `json:"status,omitempty"`
}
