/*
errors.go - Centralized error types for the aggregation engine

PURPOSE:
  The engine is deliberately hard to fail: malformed optional data
  resolves to zero-defaults or silent exclusion per the policies in
  date.go and aggregate.go. Only two conditions are errors proper, and
  both propagate unchanged to the caller:

  1. ValidationError - the caller asked for a monthly summary without
     both date bounds
  2. PersistenceError - the record store scan itself failed

  An empty result is NOT an error: a query matching zero groups returns
  an empty list and the caller renders a "no data" state.

USAGE:
  if errors.Is(err, engine.ErrMissingDateBound) { ... 400 ... }
  if errors.Is(err, engine.ErrStoreUnavailable) { ... 500 ... }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingDateBound is returned when a summary query lacks a from
	// or to bound. Monthly reports require both; raw group listings
	// tolerate unbounded sides.
	ErrMissingDateBound = errors.New("summary query requires both date bounds")

	// ErrStoreUnavailable is returned when the record store scan fails.
	// Fatal to the current query; no partial result is produced.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// StoreError wraps a storage failure with the collection being scanned.
type StoreError struct {
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return ErrStoreUnavailable }

// IsClientError reports whether the error is the caller's fault (maps to
// HTTP 400 at the API boundary).
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingDateBound)
}
