package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request would violate a uniqueness or
// no-overlap constraint (e.g. the car is already booked for those dates,
// or is not in a bookable status).
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates the actor has no rights over the target resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState indicates the requested status transition is illegal
// from the booking's current status.
var ErrInvalidState = errors.New("invalid state transition")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps unexpected internal failures (storage unavailable etc.)
// with an HTTP-ish status code so handlers can report them generically
// without leaking storage details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
