package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrDependency = errors.New("dependency failure")

	ErrStateConflict   = errors.New("state conflict")
	ErrAlreadyResolved = fmt.Errorf("%w: booking request already resolved", ErrStateConflict)
	ErrNotEligible     = fmt.Errorf("%w: sitter is not an eligible recipient", ErrStateConflict)
	ErrNotPayable      = fmt.Errorf("%w: booking cannot be paid", ErrStateConflict)
	ErrPaymentConflict = fmt.Errorf("%w: booking already paid with a different amount", ErrStateConflict)

	// ErrConcurrentUpdate is returned by stores when a compare-and-swap on a
	// booking version loses. Services retry on it and never surface it raw.
	ErrConcurrentUpdate = errors.New("booking request modified concurrently")
)

type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DependencyError wraps a failure of the durable store or another
// collaborator the current operation cannot proceed without.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}
