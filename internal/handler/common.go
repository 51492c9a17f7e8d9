package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinelux-booking/internal/gateway"
)

// serviceError relays a backend failure to the UI.  Service responses
// keep their status and normalized message; transport failures surface
// as 502 with the given wording.
func serviceError(c echo.Context, err error, fallback string) error {
	if apiErr, ok := gateway.AsAPIError(err); ok {
		return c.JSON(apiErr.Status, echo.Map{"error": apiErr.Message})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": fallback})
}
