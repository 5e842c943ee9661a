package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// DefaultCookieName is used when CookieOptions.Name is empty.
const DefaultCookieName = "session"

type CookieOptions struct {
	Name   string
	Secure bool
}

// Store keeps the session token in a single HttpOnly cookie.
type Store struct {
	codec  *Codec
	name   string
	secure bool
}

func NewStore(codec *Codec, opts CookieOptions) *Store {
	name := opts.Name
	if name == "" {
		name = DefaultCookieName
	}
	return &Store{codec: codec, name: name, secure: opts.Secure}
}

// Issue signs sess and writes it to the response. The returned session has
// its issue and expiry times filled in.
func (s *Store) Issue(c echo.Context, sess domain.Session) (domain.Session, error) {
	token, issued, err := s.codec.Encode(sess)
	if err != nil {
		return domain.Session{}, err
	}
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		MaxAge:   int(s.codec.TTL() / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return issued, nil
}

// Read returns the request's session, or nil when the cookie is missing,
// expired, tampered with or signed by an unknown key.
func (s *Store) Read(c echo.Context) *domain.Session {
	ck, err := c.Cookie(s.name)
	if err != nil || ck.Value == "" {
		return nil
	}
	sess, err := s.codec.Decode(ck.Value)
	if err != nil {
		return nil
	}
	return sess
}

// Clear drops the whole session cookie.
func (s *Store) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
