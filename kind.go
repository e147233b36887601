package retry

import (
	"errors"
	"time"
)

// A Kind labels a failure category for retry filtering. Kinds are compared
// by exact equality; there is no hierarchy or prefix matching. An untagged
// error has the zero Kind.
type Kind string

// kinder is implemented by errors that report their own kind, including
// failures from other packages that never pass through Tag.
type kinder interface {
	RetryKind() Kind
}

// A KindError attaches a Kind to a failure without changing its message.
type KindError struct {
	kind Kind
	err  error
}

// Tag labels err with kind so the executor can decide whether it deserves
// another attempt. Tagging nil returns nil.
func Tag(err error, kind Kind) error {
	if err == nil {
		return nil
	}

	return &KindError{kind: kind, err: err}
}

// Error implements the `error` interface
func (e *KindError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the labelled failure
func (e *KindError) Unwrap() error {
	return e.err
}

// RetryKind returns the attached kind
func (e *KindError) RetryKind() Kind {
	return e.kind
}

// KindOf reports the kind of err: the nearest Tag wrapper if there is one,
// otherwise whatever the error reports for itself via RetryKind.
func KindOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.kind
	}

	var k kinder
	if errors.As(err, &k) {
		return k.RetryKind()
	}

	return ""
}

// isRetryable reports whether err's kind is eligible for another attempt.
// An empty filter retries everything.
func isRetryable(err error, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}

	k := KindOf(err)
	for _, want := range kinds {
		if k == want {
			return true
		}
	}

	return false
}

// delayHinter is implemented by errors that know how long the next wait
// should be, such as rate-limit responses carrying a Retry-After header.
type delayHinter interface {
	RetryAfter() time.Duration
}

// An AfterError pairs a failure with a server-instructed wait.
type AfterError struct {
	err   error
	delay time.Duration
}

// After labels err with an explicit wait to use before the next attempt,
// overriding the configured delay for that wait only. Labelling nil
// returns nil.
func After(err error, delay time.Duration) error {
	if err == nil {
		return nil
	}

	return &AfterError{err: err, delay: delay}
}

// Error implements the `error` interface
func (e *AfterError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the labelled failure
func (e *AfterError) Unwrap() error {
	return e.err
}

// RetryAfter returns the instructed wait
func (e *AfterError) RetryAfter() time.Duration {
	return e.delay
}

// delayHint returns the wait requested by err, if it carries one.
func delayHint(err error) (time.Duration, bool) {
	var h delayHinter
	if errors.As(err, &h) {
		return h.RetryAfter(), true
	}

	return 0, false
}
