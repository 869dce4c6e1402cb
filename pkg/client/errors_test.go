package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *Error
		expected string
	}{
		{
			name: "transport error with status",
			apiError: &Error{
				Kind:       KindTransport,
				StatusCode: 500,
				Message:    "500 Internal Server Error",
			},
			expected: "quickpin transport error (status 500): 500 Internal Server Error",
		},
		{
			name: "transport error with wrapped error",
			apiError: &Error{
				Kind:    KindTransport,
				Message: "request failed",
				Err:     errors.New("connection refused"),
			},
			expected: "quickpin transport error: request failed: connection refused",
		},
		{
			name: "transport error with status and wrapped error",
			apiError: &Error{
				Kind:       KindTransport,
				StatusCode: 502,
				Message:    "bad gateway",
				Err:        errors.New("upstream down"),
			},
			expected: "quickpin transport error (status 502): bad gateway: upstream down",
		},
		{
			name:     "authentication error",
			apiError: newError(KindAuthentication, "Authentication failed"),
			expected: "quickpin authentication error: Authentication failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := &Error{Kind: KindTransport, Message: "request failed", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		fn   func(error) bool
		want bool
	}{
		{"invalid argument matches", newError(KindInvalidArgument, "x"), IsInvalidArgument, true},
		{"authentication matches", newError(KindAuthentication, "x"), IsAuthentication, true},
		{"not authenticated matches", newError(KindNotAuthenticated, "x"), IsNotAuthenticated, true},
		{"transport matches", newError(KindTransport, "x"), IsTransport, true},
		{"kinds do not cross-match", newError(KindAuthentication, "x"), IsTransport, false},
		{"foreign errors never match", errors.New("plain"), IsTransport, false},
		{"nil never matches", nil, IsTransport, false},
		{"wrapped errors still match", fmt.Errorf("context: %w", newError(KindTransport, "x")), IsTransport, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("helper = %v, want %v", got, tt.want)
			}
		})
	}
}
