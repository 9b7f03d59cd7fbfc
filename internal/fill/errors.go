package fill

import "errors"

var (
	// ErrNoTarget means neither the coordinate lookup nor the stored
	// last-known element produced a usable target.
	ErrNoTarget = errors.New("no resolvable target element")

	// ErrNoFields means the target resolved but its subtree (and the bounded
	// ancestor walk) contained nothing fillable.
	ErrNoFields = errors.New("no fillable fields in target")
)
