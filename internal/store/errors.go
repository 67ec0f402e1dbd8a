// ABOUTME: Structured error types for capability index persistence
// ABOUTME: Distinguishes structural invalidity from write failures
package store

import "fmt"

// ValidationError indicates a loaded index document is structurally
// invalid. Callers must treat it as "no usable index" and trigger a full
// rebuild rather than propagate a crash.
type ValidationError struct {
	Path   string // Index file location
	Reason string // What invariant was violated
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("capability index at %s is invalid: %s (a full rescan will rebuild it)", e.Path, e.Reason)
}

// WriteError indicates the index could not be persisted. The previous
// on-disk state is untouched because writes are atomic-replace.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write capability index to %s: %v (previous index left intact)", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
