package retry

import (
	"errors"
	"fmt"
)

// CanceledError is returned when the caller's context fires while the
// executor is waiting between attempts. It is raised by the executor itself,
// never by the wrapped operation, so callers can tell "you cancelled me"
// apart from "the operation kept failing".
type CanceledError struct {
	// Attempt is the last attempt that completed before cancellation
	// was observed.
	Attempt int

	err error
}

// Error implements the `error` interface
func (e *CanceledError) Error() string {
	return fmt.Sprintf("canceled after attempt %d: %v", e.Attempt, e.err)
}

// Unwrap exposes the context's error so that errors.Is(err, context.Canceled)
// and errors.Is(err, context.DeadlineExceeded) keep working
func (e *CanceledError) Unwrap() error {
	return e.err
}

// errLoopExited guards the bottom of the attempt loop. Every branch inside
// the loop returns or continues within the attempt budget, so observing this
// error means the loop invariant is broken.
var errLoopExited = errors.New("retry: attempt loop exited without a result")
