package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

// MinPasswordLength is counted in characters after trimming.
const MinPasswordLength = 6

// Messages shown on the registration and login forms.
const (
	MsgInvalidEmail      = "Invalid email address!"
	MsgEmailInUse        = "This E-mail already in use!"
	MsgNameEmpty         = "Username is Empty!"
	MsgPasswordTooShort  = "The password must be of minimum length 6 characters"
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"

	MsgUnknownEmail    = "Invalid Email Address!"
	MsgPasswordEmpty   = "Password is empty!"
	MsgInvalidPassword = "Invalid Password!"
)

// AuthOptions selects the optional registration fields.
type AuthOptions struct {
	// RequireFullName makes first_name and last_name mandatory.
	RequireFullName bool
}

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	validate *validator.Validate
	opts     AuthOptions
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, opts AuthOptions, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
		opts:     opts,
		log:      log,
	}
}

// Register validates the form, hashes the password and stores the user.
// The existence check and the insert are separate statements; the store's
// unique constraint catches a concurrent registration of the same email.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Password = strings.TrimSpace(in.Password)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	verr := &domain.ValidationError{}
	if err := s.validate.Var(in.Email, "required,email"); err != nil {
		verr.Add(MsgInvalidEmail)
	} else {
		exists, err := s.repo.EmailExists(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("register: check email: %w", err)
		}
		if exists {
			verr.Add(MsgEmailInUse)
		}
	}
	if in.Name == "" {
		verr.Add(MsgNameEmpty)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		verr.Add(MsgPasswordTooShort)
	}
	if s.opts.RequireFullName {
		if in.FirstName == "" {
			verr.Add(MsgFirstNameRequired)
		}
		if in.LastName == "" {
			verr.Add(MsgLastNameRequired)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.log.Warn().Str("email", in.Email).Msg("duplicate email rejected by store")
			return nil, &domain.ValidationError{Messages: []string{MsgEmailInUse}}
		}
		return nil, fmt.Errorf("register: insert user: %w", err)
	}
	user.ID = id

	s.log.Info().Int64("user_id", id).Msg("user registered")
	return user, nil
}

// Login checks the credentials and returns the matching user. The caller
// issues the session only when this returns without error.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	in.Password = strings.TrimSpace(in.Password)

	verr := &domain.ValidationError{}
	n, err := s.repo.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("login: count email: %w", err)
	}
	if n != 1 {
		verr.Add(MsgUnknownEmail)
	}
	if in.Password == "" {
		verr.Add(MsgPasswordEmpty)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		// The row vanished between the count and the fetch.
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidPasswd
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// CurrentUser loads the user referenced by a session.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}
