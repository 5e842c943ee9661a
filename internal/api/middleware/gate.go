package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LandingPath is where signed-in users are sent by RequireNoSession.
const LandingPath = "/main"

// RequireSession lets authenticated requests through. Anonymous requests are
// answered by fallback in place, so the URL stays the same.
func RequireSession(fallback echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFrom(c).Authenticated() {
				return fallback(c)
			}
			return next(c)
		}
	}
}

// RequireNoSession redirects authenticated requests to the landing page.
func RequireNoSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c).Authenticated() {
				return c.Redirect(http.StatusFound, LandingPath)
			}
			return next(c)
		}
	}
}
