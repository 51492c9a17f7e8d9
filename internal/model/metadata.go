package model

// Types served by the third-party movie metadata provider (TMDB).  The
// provider's wire format is snake_case, unlike the camelCase the in-house
// services speak, so these stay separate from the catalog types even
// where the shapes overlap.

// MetaMovie is one listing entry: now-playing, upcoming, popular,
// top-rated, search and discover results all share it.
type MetaMovie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int64 `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
}

// MetaMovieList is the provider's paginated listing envelope.
type MetaMovieList struct {
	Page         int         `json:"page"`
	Results      []MetaMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// MetaMovieDetails extends a listing entry with the fields only the
// per-movie endpoint returns.
type MetaMovieDetails struct {
	MetaMovie
	Runtime             int                     `json:"runtime"`
	Genres              []Genre                 `json:"genres"`
	ProductionCompanies []MetaProductionCompany `json:"production_companies"`
	Tagline             string                  `json:"tagline"`
	Status              string                  `json:"status"`
	Budget              int64                   `json:"budget"`
	Revenue             int64                   `json:"revenue"`
}

// MetaProductionCompany is a producing studio on a details record.
type MetaProductionCompany struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

// MetaCast is one billed cast member, ordered by billing.
type MetaCast struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// MetaCrew is one crew credit.
type MetaCrew struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// MetaCredits is the cast and crew of a movie.
type MetaCredits struct {
	Cast []MetaCast `json:"cast"`
	Crew []MetaCrew `json:"crew"`
}

// MetaVideo is a clip (trailer, teaser, featurette) hosted off-site.
type MetaVideo struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

// MetaVideoList is the per-movie videos envelope.
type MetaVideoList struct {
	ID      int64       `json:"id"`
	Results []MetaVideo `json:"results"`
}
