package retry

import (
	"context"
)

// An Operation is one unit of retryable work. It is invoked once per attempt,
// strictly sequentially, and must tolerate being called again after a
// failure. The executor never cancels an in-flight invocation; an operation
// that should stop early must watch ctx itself.
type Operation[T any] func(ctx context.Context) (T, error)

// decision classifies a failed attempt.
type decision int

const (
	// decisionRetry: the failure is retryable and attempts remain.
	decisionRetry decision = iota

	// decisionExhausted: retryable, but this was the final attempt.
	decisionExhausted

	// decisionPropagate: the failure's kind is outside the retryable set,
	// so it goes straight back to the caller.
	decisionPropagate
)

// classify decides what to do with a failed attempt. Splitting this out of
// the loop keeps the retry/terminal choice a plain value rather than
// control flow buried in error matching.
func classify(err error, attempt, maxAttempts int, kinds []Kind) decision {
	if !isRetryable(err, kinds) {
		return decisionPropagate
	}

	if attempt == maxAttempts {
		return decisionExhausted
	}

	return decisionRetry
}

// Do invokes op until it succeeds, returning its result, or until the
// attempt budget runs out, returning op's last failure exactly as raised.
// A failure whose kind falls outside WithRetryableKinds propagates
// immediately, with no wait and no retry.
//
// Between attempts Do sleeps for the configured delay; ctx cancels the
// sleep, in which case Do returns a *CanceledError instead of trying again.
// Cancellation is only checked around the wait - a context that fires while
// op is running takes effect at the next wait boundary.
func Do[T any](ctx context.Context, op Operation[T], opts ...Option) (T, error) {
	var zero T

	cfg := newConfig(opts)
	bo := cfg.newBackOff()

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		cfg.logger.Error("attempt failed",
			"attempt", attempt,
			"kind", string(KindOf(err)),
			"error", err)

		switch classify(err, attempt, cfg.maxAttempts, cfg.kinds) {
		case decisionPropagate:
			return zero, err

		case decisionExhausted:
			cfg.logger.Info("final attempt failed, giving up",
				"attempt", attempt,
				"max_attempts", cfg.maxAttempts)

			return zero, err

		case decisionRetry:
			// Advance the progression once per retried attempt, even if a
			// Retry-After hint overrides this particular wait.
			delay := bo.NextBackOff()
			if hint, ok := delayHint(err); ok {
				delay = hint
			}

			cfg.logger.Info("retrying",
				"attempt", attempt,
				"max_attempts", cfg.maxAttempts,
				"delay", delay)

			if waitErr := wait(ctx, delay); waitErr != nil {
				return zero, &CanceledError{Attempt: attempt, err: waitErr}
			}
		}
	}

	// Unreachable: the final attempt always returns through the exhausted or
	// propagate branch above.
	return zero, errLoopExited
}

// Run is Do for operations with nothing to return.
func Run(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	_, err := Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)

	return err
}
