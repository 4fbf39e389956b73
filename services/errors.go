package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means a referenced assignment, attachment or template
	// id does not exist in the record set
	ErrNotFound = errors.New("record not found")

	// ErrPermissionDenied means the caller is authenticated but is
	// neither the owner nor an admin
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports missing or malformed required input. The
// operation it guards is never attempted.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a failed repository write. It surfaces as a
// server error and triggers any compensating cleanup at the caller.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
