package services

import "errors"

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation is not valid for the entity's
	// current state, or would create a duplicate.
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the caller does not own the entity it is
	// trying to act on.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation means the request payload failed validation.
	ErrValidation = errors.New("validation failed")
)

// ValidationError wraps a field-level message so handlers can surface it
// while still matching ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a validation error with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ConflictError carries a state-conflict message matchable as ErrConflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NewConflictError builds a conflict error with the given message.
func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}
