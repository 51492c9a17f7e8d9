// Package metadata is the accessor for the third-party movie metadata
// provider (TMDB): listings, per-movie details, credits, videos and
// image URL resolution.  The provider authenticates with an api_key
// query parameter rather than a bearer token, so every call goes out
// unauthenticated as far as the gateway is concerned; the key and the
// content language are appended here on each request.
package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/cinelux-booking/internal/config"
	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
)

// Client exposes the metadata provider endpoints.
type Client struct {
	gw        *gateway.Client
	key       string
	lang      string
	imageBase string
}

// New returns a metadata accessor over the given gateway.  The gateway
// must point at cfg.APIURL.
func New(gw *gateway.Client, cfg config.MetadataConfig) *Client {
	return &Client{
		gw:        gw,
		key:       cfg.APIKey,
		lang:      cfg.Language,
		imageBase: strings.TrimRight(cfg.ImageURL, "/"),
	}
}

// path appends the provider credentials and content language to an
// endpoint.  Every provider call goes through here.
func (c *Client) path(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.key)
	params.Set("language", c.lang)
	return endpoint + "?" + params.Encode()
}

func pageValues(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

// NowPlaying lists movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (model.MetaMovieList, error) {
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/movie/now_playing", pageValues(page)), &list, false)
	return list, err
}

// Upcoming lists announced movies.
func (c *Client) Upcoming(ctx context.Context, page int) (model.MetaMovieList, error) {
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/movie/upcoming", pageValues(page)), &list, false)
	return list, err
}

// Popular lists movies by current popularity.
func (c *Client) Popular(ctx context.Context, page int) (model.MetaMovieList, error) {
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/movie/popular", pageValues(page)), &list, false)
	return list, err
}

// TopRated lists movies by aggregate rating.
func (c *Client) TopRated(ctx context.Context, page int) (model.MetaMovieList, error) {
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/movie/top_rated", pageValues(page)), &list, false)
	return list, err
}

// Search runs a free-text title search.  Adult titles are excluded.
func (c *Client) Search(ctx context.Context, query string, page int) (model.MetaMovieList, error) {
	params := pageValues(page)
	params.Set("query", query)
	params.Set("include_adult", "false")
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/search/movie", params), &list, false)
	return list, err
}

// MovieDetails fetches the full record for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (model.MetaMovieDetails, error) {
	var d model.MetaMovieDetails
	err := c.gw.Get(ctx, c.path(fmt.Sprintf("/movie/%d", movieID), nil), &d, false)
	return d, err
}

// MovieCredits fetches a movie's cast and crew.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) (model.MetaCredits, error) {
	var cr model.MetaCredits
	err := c.gw.Get(ctx, c.path(fmt.Sprintf("/movie/%d/credits", movieID), nil), &cr, false)
	return cr, err
}

// MovieVideos fetches a movie's clips.
func (c *Client) MovieVideos(ctx context.Context, movieID int64) (model.MetaVideoList, error) {
	var v model.MetaVideoList
	err := c.gw.Get(ctx, c.path(fmt.Sprintf("/movie/%d/videos", movieID), nil), &v, false)
	return v, err
}

// SimilarMovies lists movies the provider considers similar.
func (c *Client) SimilarMovies(ctx context.Context, movieID int64, page int) (model.MetaMovieList, error) {
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path(fmt.Sprintf("/movie/%d/similar", movieID), pageValues(page)), &list, false)
	return list, err
}

// Genres lists the provider's genre vocabulary.
func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	err := c.gw.Get(ctx, c.path("/genre/movie/list", nil), &resp, false)
	return resp.Genres, err
}

// DiscoverFilter narrows a Discover listing.  Zero values are omitted
// from the request.
type DiscoverFilter struct {
	Page           int
	GenreIDs       string // comma-separated provider genre ids
	SortBy         string // e.g. "popularity.desc"
	ReleasedAfter  string // YYYY-MM-DD, inclusive
	ReleasedBefore string // YYYY-MM-DD, inclusive
}

// Discover lists movies matching the filter.
func (c *Client) Discover(ctx context.Context, filter DiscoverFilter) (model.MetaMovieList, error) {
	params := pageValues(filter.Page)
	if filter.GenreIDs != "" {
		params.Set("with_genres", filter.GenreIDs)
	}
	if filter.SortBy != "" {
		params.Set("sort_by", filter.SortBy)
	}
	if filter.ReleasedAfter != "" {
		params.Set("primary_release_date.gte", filter.ReleasedAfter)
	}
	if filter.ReleasedBefore != "" {
		params.Set("primary_release_date.lte", filter.ReleasedBefore)
	}
	var list model.MetaMovieList
	err := c.gw.Get(ctx, c.path("/discover/movie", params), &list, false)
	return list, err
}
