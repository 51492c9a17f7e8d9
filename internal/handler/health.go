package handler // HTTP handlers for the local kiosk server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint so a supervising process or
// the UI shell can verify the kiosk is up.  Returns plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
