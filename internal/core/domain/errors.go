package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from transport errors, which carry a SearchError.
var (
	// ErrQueryTooShort indicates the trimmed query text is below MinQueryLength.
	ErrQueryTooShort = errors.New("query too short")

	// ErrQueryTooLong indicates the query text exceeds MaxQueryLength.
	ErrQueryTooLong = errors.New("query too long")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind classifies a search failure.
type ErrorKind string

const (
	// ErrKindNetwork is a connectivity failure.
	ErrKindNetwork ErrorKind = "network"

	// ErrKindTimeout is a transport-level timeout.
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindServer is a non-2xx response, optionally with a status code.
	ErrKindServer ErrorKind = "server"

	// ErrKindValidation is query input rejected before any request is issued.
	ErrKindValidation ErrorKind = "validation"
)

// SearchError is a typed failure of one source query.
type SearchError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status for server errors, 0 otherwise.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	switch {
	case e.Kind == ErrKindServer && e.StatusCode > 0:
		return fmt.Sprintf("%s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether retrying the same request could plausibly
// succeed. Validation failures never are.
func (e *SearchError) Retryable() bool {
	return e.Kind != ErrKindValidation
}

// NewNetworkError wraps a connectivity failure.
func NewNetworkError(err error) *SearchError {
	return &SearchError{Kind: ErrKindNetwork, Err: err}
}

// NewTimeoutError wraps a transport timeout.
func NewTimeoutError(err error) *SearchError {
	return &SearchError{Kind: ErrKindTimeout, Err: err}
}

// NewServerError wraps a non-2xx response.
func NewServerError(status int, err error) *SearchError {
	return &SearchError{Kind: ErrKindServer, StatusCode: status, Err: err}
}

// NewValidationError wraps a locally rejected query.
func NewValidationError(err error) *SearchError {
	return &SearchError{Kind: ErrKindValidation, Err: err}
}

// AsSearchError extracts a SearchError from err, wrapping unclassified
// errors as network failures so every coordinator error carries a kind.
func AsSearchError(err error) *SearchError {
	if err == nil {
		return nil
	}
	var se *SearchError
	if errors.As(err, &se) {
		return se
	}
	return NewNetworkError(err)
}
