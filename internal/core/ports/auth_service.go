package ports

import (
	"context"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Name      string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// LoginInput is the raw login form.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService implements the registration and login flows.
//
// Both flows return *domain.ValidationError for client-fixable input. Login
// returns domain.ErrInvalidPasswd on a password mismatch. Any other error is
// an infrastructure failure.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, error)
	CurrentUser(ctx context.Context, id int64) (*domain.User, error)
}
