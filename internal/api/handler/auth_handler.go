package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/api/metrics"
	"github.com/bandhub/bandhub/internal/api/middleware"
	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
	"github.com/bandhub/bandhub/internal/core/service"
)

const (
	loginPath    = "/login"
	registerPath = "/register"

	guestName = "Guest"
)

// SessionStore issues and clears the client-held session.
type SessionStore interface {
	Issue(c echo.Context, s domain.Session) (domain.Session, error)
	Clear(c echo.Context)
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionStore
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

type registerForm struct {
	Name      string `form:"user_name"`
	Password  string `form:"user_pass"`
	Email     string `form:"user_email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

// values repopulates the form. The password is never echoed back.
func (f registerForm) values() map[string]string {
	return map[string]string{
		"user_name":  f.Name,
		"user_email": f.Email,
		"first_name": f.FirstName,
		"last_name":  f.LastName,
	}
}

type loginForm struct {
	Email    string `form:"user_email"`
	Password string `form:"user_pass"`
}

// RegisterPage renders the empty registration form. It is also the fallback
// of the RequireSession gate.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return render(c, "register", newPage(c, "Register"))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:      form.Name,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		p := newPage(c, "Register")
		p.Errors = verr.Messages
		p.Values = form.values()
		return render(c, "register", p)
	case err != nil:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.Redirect(http.StatusFound, loginPath)
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, "login", newPage(c, "Login"))
}

// Login handles POST /login. The session is only written after the password
// matched.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		p := newPage(c, "Login")
		p.Errors = verr.Messages
		return render(c, "login", p)
	case errors.Is(err, domain.ErrInvalidPasswd):
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		p := newPage(c, "Login")
		p.Errors = []string{service.MsgInvalidPassword}
		return render(c, "login", p)
	case err != nil:
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("login: %w", err)
	}

	if _, err := h.sessions.Issue(c, domain.Session{IsLoggedIn: true, UserID: user.ID}); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("login: issue session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return c.Redirect(http.StatusFound, middleware.LandingPath)
}

// Logout clears the whole session and sends the user to the registration page.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusFound, registerPath)
}

// Main greets the session user. A session pointing at a missing row is a
// server error here.
func (h *AuthHandler) Main(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	user, err := h.authService.CurrentUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return fmt.Errorf("main: user %d: %w", sess.UserID, err)
	}
	p := newPage(c, "Home")
	p.Data = user
	return render(c, "main", p)
}

// Profile shows the session user, or a guest placeholder when the row is gone.
func (h *AuthHandler) Profile(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	user, err := h.authService.CurrentUser(c.Request().Context(), sess.UserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user = &domain.User{Name: guestName}
	case err != nil:
		return fmt.Errorf("profile: user %d: %w", sess.UserID, err)
	}
	p := newPage(c, "Profile")
	p.Data = user
	return render(c, "profile", p)
}
