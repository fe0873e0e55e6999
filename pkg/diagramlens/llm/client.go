// Package llm defines the language model boundary used by diagramlens
// services: a minimal Client interface, a Gemini implementation, a mock
// for tests, and retry helpers for transient failures.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client sends completion requests to a language model.
// Implementations must be safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Sentinel errors for client operations.
var (
	// ErrEmptyResponse indicates the model returned no content.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMissingAPIKey indicates a hosted client was created without credentials.
	ErrMissingAPIKey = errors.New("api key required")
)

// Error wraps a client failure with the operation and retryability.
type Error struct {
	// Op is the operation that failed ("complete", "connect").
	Op string
	// Err is the underlying error.
	Err error
	// Retryable reports whether retrying may succeed.
	Retryable bool
}

// NewError creates an Error.
func NewError(op string, err error, retryable bool) *Error {
	return &Error{Op: op, Err: err, Retryable: retryable}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is an *Error marked retryable.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// isRetryableMessage checks if an error message indicates a transient error.
func isRetryableMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource_exhausted") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "overloaded") ||
		strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "429") ||
		strings.Contains(lower, "500") ||
		strings.Contains(lower, "503")
}
