package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals an unreadable or malformed vocabulary source.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidRequest signals a rejected request (blank query, bad top_k, blank synonym fields).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmptyVocabulary signals an index build with nothing ingested.
	ErrEmptyVocabulary = errors.New("no NCO data, ingest first")
)

// ValidationError wraps ErrValidation with the offending row and column.
// Row is 1-based over data rows (the header is not counted); 0 means the whole source.
type ValidationError struct {
	Row    int
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %s", ErrValidation.Error(), e.Row, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", ErrValidation.Error(), e.Row, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", ErrValidation.Error(), e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
	}
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for the given location.
func NewValidationError(row int, column, reason string) error {
	return &ValidationError{Row: row, Column: column, Reason: reason}
}

// InvalidRequestf wraps ErrInvalidRequest with a formatted reason.
func InvalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
