package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can branch without string matching.
type ErrorKind string

const (
	// KindInvalidArgument represents a caller configuration error (e.g. an
	// empty base URL). Never worth retrying.
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindAuthentication represents credentials rejected by the service.
	KindAuthentication ErrorKind = "authentication"

	// KindNotAuthenticated represents an operation attempted before any
	// token was resolved. Ordering error, should not occur in correct code.
	KindNotAuthenticated ErrorKind = "not_authenticated"

	// KindTransport represents a network failure or a non-2xx response.
	KindTransport ErrorKind = "transport"
)

// Error is a QuickPin API error with enough structure to distinguish the
// failure kinds in the taxonomy above.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("quickpin %s error (status %d): %s: %v",
			e.Kind, e.StatusCode, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("quickpin %s error: %s: %v", e.Kind, e.Message, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("quickpin %s error (status %d): %s",
			e.Kind, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("quickpin %s error: %s", e.Kind, e.Message)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// kindOf extracts the error kind, or "" for foreign errors.
func kindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsInvalidArgument returns true if the error is a caller configuration error.
func IsInvalidArgument(err error) bool {
	return kindOf(err) == KindInvalidArgument
}

// IsAuthentication returns true if the service rejected the credentials.
func IsAuthentication(err error) bool {
	return kindOf(err) == KindAuthentication
}

// IsNotAuthenticated returns true if an operation was attempted before a
// token was resolved.
func IsNotAuthenticated(err error) bool {
	return kindOf(err) == KindNotAuthenticated
}

// IsTransport returns true for network failures and non-2xx responses.
func IsTransport(err error) bool {
	return kindOf(err) == KindTransport
}
