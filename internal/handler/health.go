package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness together with the configured state of each
// collaborator ("ok", "disabled" or "misconfigured").
func HealthHandler(services map[string]string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "ok",
			"services": services,
		})
	}
}
