// Package service implements the business workflows over the
// repositories: reference-data resolution, inventory materialization,
// the order-entry state machine, the availability query and reporting.
// Services depend on small store interfaces rather than database
// handles so they can be exercised with in-memory doubles.
package service

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or missing input field. It aborts
// the current submission before any write happens and names the
// offending field so the caller can surface it next to the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrProductUnavailable is returned when no inventory snapshot exists
// for the requested (city, product) pair. Raised before any write.
var ErrProductUnavailable = errors.New("product not available in this city")

// ShortageError signals that the requested quantity exceeds the current
// stock. It is not fatal: the caller may resubmit with an explicit
// shortage confirmation to commit anyway. Until then the workflow stays
// in Editing and nothing is written.
type ShortageError struct {
	Requested int
	Available int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d (short %d)",
		e.Requested, e.Available, e.Shortfall())
}

// Shortfall returns how many units the request exceeds the stock by.
func (e *ShortageError) Shortfall() int {
	return e.Requested - e.Available
}
