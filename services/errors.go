package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidTransition signals an approve/reject call against an
	// approval that is no longer PENDING. Reported to the caller as a
	// conflict, never retried.
	ErrInvalidTransition = errors.New("approval is not pending")

	// ErrMissingOrganizationContext signals that the router needed a unit
	// lookup for a staff member that has no unit assigned.
	ErrMissingOrganizationContext = errors.New("staff member has no unit assigned")
)

// ValidationError carries field-level messages for malformed input or
// business-rule violations. Controllers surface it as a 400 with the field
// map spread into the error envelope.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
