package config

import "os"

// MetadataConfig configures the third-party movie metadata provider
// (TMDB).  The provider is optional: with no API key the kiosk simply
// does not expose the metadata endpoints.
//
//	TMDB_API_URL   – provider API base (default https://api.themoviedb.org/3)
//	TMDB_IMAGE_URL – image CDN base (default https://image.tmdb.org/t/p)
//	TMDB_API_KEY   – provider API key; empty disables the provider
//	TMDB_LANGUAGE  – content language (default fr-FR, matching the venue)
type MetadataConfig struct {
	APIURL   string
	ImageURL string
	APIKey   string
	Language string
}

// LoadMetadataConfig reads the TMDB_* environment variables.
func LoadMetadataConfig() MetadataConfig {
	return MetadataConfig{
		APIURL:   getenv("TMDB_API_URL", "https://api.themoviedb.org/3"),
		ImageURL: getenv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p"),
		APIKey:   os.Getenv("TMDB_API_KEY"),
		Language: getenv("TMDB_LANGUAGE", "fr-FR"),
	}
}
