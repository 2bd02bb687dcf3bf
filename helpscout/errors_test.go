package helpscout

import (
	"errors"
	"fmt"
	"testing"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		expected bool
	}{
		{
			name:     "auth failure should not retry",
			kind:     KindAuth,
			expected: false,
		},
		{
			name:     "not found should not retry",
			kind:     KindNotFound,
			expected: false,
		},
		{
			name:     "transient failure should retry",
			kind:     KindTransient,
			expected: true,
		},
		{
			name:     "malformed response should not retry",
			kind:     KindMalformed,
			expected: false,
		},
		{
			name:     "protocol error should not retry",
			kind:     KindProtocol,
			expected: false,
		},
		{
			name:     "empty kind should not retry",
			kind:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := shouldRetry(tt.kind)
			if result != tt.expected {
				t.Errorf("shouldRetry(%q) = %v, want %v", tt.kind, result, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *Error
		expected string
	}{
		{
			name: "error with status and wrapped error",
			apiError: &Error{
				Kind:       KindTransient,
				StatusCode: 500,
				Message:    "server error",
				Err:        errors.New("connection refused"),
			},
			expected: "helpscout: transient error (status 500): server error: connection refused",
		},
		{
			name: "error without wrapped error",
			apiError: &Error{
				Kind:       KindNotFound,
				StatusCode: 404,
				Message:    "resource not found: /v1/collections/nope/articles",
			},
			expected: "helpscout: not_found error (status 404): resource not found: /v1/collections/nope/articles",
		},
		{
			name: "error without status",
			apiError: &Error{
				Kind:    KindProtocol,
				Message: "pagination cursor repeated, refusing to loop",
			},
			expected: "helpscout: protocol error: pagination cursor repeated, refusing to loop",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := tt.apiError.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	apiErr := &Error{Kind: KindAuth, StatusCode: 401, Message: "authentication failed"}

	if got := KindOf(apiErr); got != KindAuth {
		t.Errorf("KindOf(apiErr) = %q, want %q", got, KindAuth)
	}

	// KindOf must see through fmt.Errorf wrapping, since callers wrap
	// liberally on the way up.
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", apiErr))
	if got := KindOf(wrapped); got != KindAuth {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindAuth)
	}

	if got := KindOf(errors.New("plain")); got != Kind("") {
		t.Errorf("KindOf(plain error) = %q, want empty", got)
	}

	if got := KindOf(nil); got != Kind("") {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("wrapped error")
	apiErr := &Error{
		Kind:    KindTransient,
		Message: "couldn't perform http request",
		Err:     inner,
	}

	if !errors.Is(apiErr, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}
