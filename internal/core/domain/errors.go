package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrBandNotFound  = errors.New("band not found")
	ErrInvalidPasswd = errors.New("invalid password")
)

// ValidationError carries every message produced while checking a form.
// Messages keep the order in which the fields were checked.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Add appends a message.
func (e *ValidationError) Add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// Empty reports whether no message was collected.
func (e *ValidationError) Empty() bool {
	return len(e.Messages) == 0
}

// OrNil returns e when it holds messages and nil otherwise, so callers can
// return it directly as an error.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
