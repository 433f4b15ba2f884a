package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor lacks ownership or the role required for the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInvalidTransition indicates that a requested status change is not reachable
// from the current status, or that its guard conditions are unmet.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrConcurrentModification indicates that the stored status no longer matches
// the one the transition guard was evaluated against. Callers should re-read
// and retry.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// AppError carries an HTTP-ish code alongside the wrapped cause. Used by the
// repository layer for infrastructure failures that have no sentinel.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
