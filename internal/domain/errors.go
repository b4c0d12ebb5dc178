package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnknownCollection signals a collection name outside the catalog.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrInvalidRecord signals a record rejected on insert.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidQuery signals malformed listing or analytics parameters.
	ErrInvalidQuery = errors.New("invalid query")
)

// FieldError wraps ErrInvalidRecord with the offending field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrInvalidRecord.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidRecord }

// NewFieldError creates a field-level validation error.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
