package assistant

import (
	"errors"
	"fmt"
)

// ErrEmptyTopic indicates GenerateDiagram was called without a topic.
var ErrEmptyTopic = errors.New("topic cannot be empty")

// QueryError wraps a failed assistant call with its query context.
type QueryError struct {
	// QueryID identifies the call in logs and traces.
	QueryID string
	// Op is the operation that failed ("explain", "generate").
	Op string
	// ElementID is the focal element, empty for diagram generation.
	ElementID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.ElementID == "" {
		return fmt.Sprintf("%s (query %s): %v", e.Op, e.QueryID, e.Err)
	}
	return fmt.Sprintf("%s element %s (query %s): %v", e.Op, e.ElementID, e.QueryID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *QueryError) Unwrap() error {
	return e.Err
}
