package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLevel gates an operation on the caller's verified level claim.
// Policy changes (owner-only access, different rank thresholds) belong here,
// not in the directory service. The denial message stays generic so callers
// learn nothing about the gated operation.
func RequireLevel(min int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			level, ok := c.Get("level").(int)
			if !ok || level < min {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient user level")
			}
			return next(c)
		}
	}
}
