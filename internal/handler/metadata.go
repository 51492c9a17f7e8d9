package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/metadata"
)

// MetadataHandler proxies the third-party movie metadata provider for
// the UI: richer listings, per-movie details, credits and trailers than
// the in-house catalog carries.  Registered only when a provider key is
// configured.
type MetadataHandler struct {
	Meta *metadata.Client
}

// NewMetadataHandler constructs a MetadataHandler.
func NewMetadataHandler(meta *metadata.Client) *MetadataHandler {
	if meta == nil {
		panic("nil metadata client passed to NewMetadataHandler")
	}
	return &MetadataHandler{Meta: meta}
}

// NowPlaying handles GET /v1/meta/movies/now-playing.
func (h *MetadataHandler) NowPlaying(c echo.Context) error {
	list, err := h.Meta.NowPlaying(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Upcoming handles GET /v1/meta/movies/upcoming.
func (h *MetadataHandler) Upcoming(c echo.Context) error {
	list, err := h.Meta.Upcoming(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Popular handles GET /v1/meta/movies/popular.
func (h *MetadataHandler) Popular(c echo.Context) error {
	list, err := h.Meta.Popular(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// TopRated handles GET /v1/meta/movies/top-rated.
func (h *MetadataHandler) TopRated(c echo.Context) error {
	list, err := h.Meta.TopRated(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Search handles GET /v1/meta/movies/search?q=...
func (h *MetadataHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	list, err := h.Meta.Search(c.Request().Context(), q, pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Movie handles GET /v1/meta/movies/:id.
func (h *MetadataHandler) Movie(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	details, err := h.Meta.MovieDetails(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, details)
}

// Credits handles GET /v1/meta/movies/:id/credits.
func (h *MetadataHandler) Credits(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	credits, err := h.Meta.MovieCredits(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, credits)
}

// Trailer handles GET /v1/meta/movies/:id/trailer: the best YouTube
// clip for the movie, or 404 when none exists.
func (h *MetadataHandler) Trailer(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	videos, err := h.Meta.MovieVideos(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	trailer := metadata.Trailer(videos.Results)
	if trailer == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no trailer available"})
	}
	return c.JSON(http.StatusOK, trailer)
}

// Similar handles GET /v1/meta/movies/:id/similar.
func (h *MetadataHandler) Similar(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	list, err := h.Meta.SimilarMovies(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Genres handles GET /v1/meta/genres.
func (h *MetadataHandler) Genres(c echo.Context) error {
	genres, err := h.Meta.Genres(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "metadata provider unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"genres": genres})
}
