// Package storage holds what every store backend shares: the error taxonomy,
// input validation and SQL fragments that encode listing order.
package storage

import (
	"errors"
	"fmt"
)

// Error kinds returned by store operations. Callers match them with errors.Is.
var (
	ErrValidation = errors.New("validation failure")
	ErrReference  = errors.New("reference failure")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports which input field was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes a ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Failure marks err as a StorageFailure raised while performing op.
// Errors that already carry a taxonomy kind are returned unchanged.
func Failure(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// NotFound reports that the entity with id does not exist.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// IsKnown reports whether err already belongs to one of the error kinds.
func IsKnown(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrReference) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStorage)
}
