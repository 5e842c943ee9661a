package ports

import (
	"context"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// UserRepository is the credential store. It exclusively owns user rows.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	// Insert stores a new user and returns its id. A duplicate email yields
	// domain.ErrEmailTaken.
	Insert(ctx context.Context, user *domain.User) (int64, error)
}

// PasswordHasher is a one-way adaptive hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports a mismatch as (false, nil); an error means the hash
	// could not be evaluated at all.
	Verify(plain, hash string) (bool, error)
}
