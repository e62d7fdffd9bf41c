package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every fatal failure of a reachability run.
// Early termination is never an error: reach mode reports it through the
// flowpipe stop reason and check mode through the returned index.
var (
	// ErrConfig marks an invalid configuration, detected before the first
	// iteration.
	ErrConfig = errors.New("engine: invalid configuration")
	// ErrShape marks a dimension mismatch between the partition and a
	// constructed set or matrix block.
	ErrShape = errors.New("engine: shape mismatch")
	// ErrNumeric marks non-finite coordinates or an unexpectedly empty
	// intermediate set.
	ErrNumeric = errors.New("engine: numeric failure")
	// ErrExternal marks a failure reported by an external collaborator, the
	// discretisation or the matrix power backend. The collaborator's error
	// appears only in the message text; errors.Is and errors.As do not reach
	// it.
	ErrExternal = errors.New("engine: external failure")
)

// StepError stamps a failure with the step index and time at which it
// occurred.
type StepError struct {
	K   int
	T   float64
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t = %g): %v", e.K, e.T, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *StepError) Unwrap() error { return e.Err }

func stepError(k int, t float64, err error) error {
	return &StepError{K: k, T: t, Err: err}
}
