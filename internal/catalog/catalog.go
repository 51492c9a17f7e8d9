// Package catalog is the accessor for the movie catalog service.  It is
// a pure translation layer: URL and query shaping over the gateway, no
// state and no error handling of its own.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/model"
)

// Client exposes the catalog endpoints.
type Client struct {
	gw *gateway.Client
}

// New returns a catalog accessor over the given gateway.
func New(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Movies lists the catalog page by page.  Page numbering starts at 1;
// zero and negative values mean the first page.
func (c *Client) Movies(ctx context.Context, page int) (model.MovieList, error) {
	var list model.MovieList
	err := c.gw.Get(ctx, fmt.Sprintf("/api/movies?page=%d", normPage(page)), &list, false)
	return list, err
}

// NowPlaying lists movies currently shown.
func (c *Client) NowPlaying(ctx context.Context, page int) (model.MovieList, error) {
	var list model.MovieList
	err := c.gw.Get(ctx, fmt.Sprintf("/api/movies/now-playing?page=%d", normPage(page)), &list, false)
	return list, err
}

// Upcoming lists announced movies.
func (c *Client) Upcoming(ctx context.Context, page int) (model.MovieList, error) {
	var list model.MovieList
	err := c.gw.Get(ctx, fmt.Sprintf("/api/movies/upcoming?page=%d", normPage(page)), &list, false)
	return list, err
}

// Search runs a free-text title search.
func (c *Client) Search(ctx context.Context, query string, page int) (model.MovieList, error) {
	var list model.MovieList
	path := fmt.Sprintf("/api/movies/search?q=%s&page=%d", url.QueryEscape(query), normPage(page))
	err := c.gw.Get(ctx, path, &list, false)
	return list, err
}

// MoviesByGenre lists movies carrying the given genre.
func (c *Client) MoviesByGenre(ctx context.Context, genreID int64, page int) (model.MovieList, error) {
	var list model.MovieList
	path := fmt.Sprintf("/api/movies?genre=%d&page=%d", genreID, normPage(page))
	err := c.gw.Get(ctx, path, &list, false)
	return list, err
}

// MovieByID fetches a single catalog entry.
func (c *Client) MovieByID(ctx context.Context, id int64) (model.Movie, error) {
	var m model.Movie
	err := c.gw.Get(ctx, fmt.Sprintf("/api/movies/%d", id), &m, false)
	return m, err
}

// Genres lists all genres known to the catalog.
func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var resp struct {
		Genres []model.Genre `json:"genres"`
	}
	err := c.gw.Get(ctx, "/api/genres", &resp, false)
	return resp.Genres, err
}

// CreateMovie adds a catalog entry.  Admin only; the catalog validates
// the caller's role against the user service.
func (c *Client) CreateMovie(ctx context.Context, req model.CreateMovieRequest) (model.Movie, error) {
	var m model.Movie
	err := c.gw.Post(ctx, "/api/movies", req, &m, true)
	return m, err
}

// UpdateMovie applies a partial update to a catalog entry.  Admin only.
func (c *Client) UpdateMovie(ctx context.Context, id int64, req model.UpdateMovieRequest) (model.Movie, error) {
	var m model.Movie
	err := c.gw.Put(ctx, fmt.Sprintf("/api/movies/%d", id), req, &m, true)
	return m, err
}

// DeleteMovie removes a catalog entry.  Admin only.
func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/api/movies/%d", id), nil, true)
}

func normPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
