package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/core/domain"
)

const sessionKey = "session"

// SessionReader decodes the session carried by a request, nil when absent.
type SessionReader interface {
	Read(c echo.Context) *domain.Session
}

// LoadSession decodes the session cookie once per request and stores the
// result in the context. Invalid cookies are treated as no session.
func LoadSession(store SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := store.Read(c); sess.Authenticated() {
				c.Set(sessionKey, sess)
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session loaded by LoadSession, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}
