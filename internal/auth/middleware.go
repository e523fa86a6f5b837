package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "marketcatalyst/internal/errors"
)

// RequireRole gates a handler on a role claim. It expects the upstream JWT
// middleware to have stored *Claims under the "user" context key, and
// expresses the check itself through the HasRole predicate.
func RequireRole(index *TokenIndex, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "invalid token"})
			}
			if index.Canceled(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "token canceled"})
			}
			if !HasRole(claims, role) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{Error: "missing required role"})
			}
			return next(c)
		}
	}
}
