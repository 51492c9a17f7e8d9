package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/catalog"
	"github.com/iliyamo/cinelux-booking/internal/scheduling"
)

// BrowseHandler proxies catalog and screening reads for the UI so the
// browser only ever talks to the kiosk.  Pure pass-through; the gateway
// cache keeps repeated listings cheap.
type BrowseHandler struct {
	Catalog    *catalog.Client
	Scheduling *scheduling.Client
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(cat *catalog.Client, sched *scheduling.Client) *BrowseHandler {
	if cat == nil || sched == nil {
		panic("nil accessor passed to NewBrowseHandler")
	}
	return &BrowseHandler{Catalog: cat, Scheduling: sched}
}

func pageParam(c echo.Context) int {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// Movies handles GET /v1/movies.
func (h *BrowseHandler) Movies(c echo.Context) error {
	list, err := h.Catalog.Movies(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// NowPlaying handles GET /v1/movies/now-playing.
func (h *BrowseHandler) NowPlaying(c echo.Context) error {
	list, err := h.Catalog.NowPlaying(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Upcoming handles GET /v1/movies/upcoming.
func (h *BrowseHandler) Upcoming(c echo.Context) error {
	list, err := h.Catalog.Upcoming(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Search handles GET /v1/movies/search?q=...
func (h *BrowseHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	list, err := h.Catalog.Search(c.Request().Context(), q, pageParam(c))
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, list)
}

// Movie handles GET /v1/movies/:id.
func (h *BrowseHandler) Movie(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Catalog.MovieByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, movie)
}

// Genres handles GET /v1/genres.
func (h *BrowseHandler) Genres(c echo.Context) error {
	genres, err := h.Catalog.Genres(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "catalog unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"genres": genres})
}

// MovieScreenings handles GET /v1/movies/:id/screenings, a read-only
// peek at a movie's screenings without starting a booking session.
func (h *BrowseHandler) MovieScreenings(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	screenings, err := h.Scheduling.ScreeningsByMovie(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "scheduling unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": screenings})
}
