// Package oracle turns classified fields into concrete values via one
// round-trip to an external text-generation service. It holds no state
// between requests and never retries; a failed field is the caller's to
// report.
package oracle

import (
	"context"
	"fmt"
)

// Client is the raw request/response boundary. Exactly one external call per
// Generate.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error wraps a failed or unusable generator round-trip.
type Error struct {
	Status int // HTTP status when known, 0 otherwise
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("oracle: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("oracle: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
