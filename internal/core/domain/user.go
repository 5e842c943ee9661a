package domain

import "time"

// User models a registered account. PasswordHash never holds clear text.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the login state carried by the signed session cookie.
// UserID is a weak reference: the row is not re-checked on every request.
type Session struct {
	IsLoggedIn bool
	UserID     int64
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Authenticated reports whether the session grants access to gated pages.
func (s *Session) Authenticated() bool {
	return s != nil && s.IsLoggedIn && s.UserID > 0
}
