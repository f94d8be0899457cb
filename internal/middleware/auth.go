package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthState is the read-only slice of the session manager the guards need.
type AuthState interface {
	IsAuthenticated() bool
}

// RequireAuth gates authenticated-only routes.
func RequireAuth(auth AuthState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "You need to be logged in. Please log in and try again.")
			}
			return next(c)
		}
	}
}

// LoginGuard keeps already-authenticated users off the login route by
// redirecting them home instead of rendering it.
func LoginGuard(auth AuthState, homePath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if auth.IsAuthenticated() {
				return c.Redirect(http.StatusFound, homePath)
			}
			return next(c)
		}
	}
}
