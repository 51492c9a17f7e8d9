// Package router defines how the kiosk's HTTP routes are registered.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/handler"
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  Supervisors and the UI shell poll it to verify the kiosk
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity endpoints.  Sign-in and sign-up
// live under /v1/auth; the session-reading endpoints live under /v1.
// No middleware guards these: the kiosk serves a single local user and
// the backend services enforce authorization on every call.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me)
	e.POST("/v1/me/refresh", a.Refresh)
}

// RegisterSession registers the booking-flow endpoints.  Every route
// maps to exactly one store action.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler) {
	g := e.Group("/v1/session")
	g.GET("", s.GetSession)
	g.POST("/movie", s.SetMovie)
	g.POST("/screening", s.SelectScreening)
	g.POST("/join", s.Join)
	g.POST("/leave", s.Leave)
	g.POST("/reset", s.Reset)
	g.DELETE("/error", s.ClearError)

	e.GET("/v1/bookings", s.Bookings)
}

// RegisterMetadata registers the third-party metadata proxy endpoints.
// Only called when a provider API key is configured.
func RegisterMetadata(e *echo.Echo, m *handler.MetadataHandler) {
	g := e.Group("/v1/meta")
	g.GET("/movies/now-playing", m.NowPlaying)
	g.GET("/movies/upcoming", m.Upcoming)
	g.GET("/movies/popular", m.Popular)
	g.GET("/movies/top-rated", m.TopRated)
	g.GET("/movies/search", m.Search)
	g.GET("/movies/:id", m.Movie)
	g.GET("/movies/:id/credits", m.Credits)
	g.GET("/movies/:id/trailer", m.Trailer)
	g.GET("/movies/:id/similar", m.Similar)
	g.GET("/genres", m.Genres)
}

// RegisterBrowse registers the read-only catalog proxy endpoints.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler) {
	e.GET("/v1/movies", b.Movies)
	e.GET("/v1/movies/now-playing", b.NowPlaying)
	e.GET("/v1/movies/upcoming", b.Upcoming)
	e.GET("/v1/movies/search", b.Search)
	e.GET("/v1/movies/:id", b.Movie)
	e.GET("/v1/movies/:id/screenings", b.MovieScreenings)
	e.GET("/v1/genres", b.Genres)
}
