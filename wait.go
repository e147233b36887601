package retry

import (
	"context"
	"math"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
)

// newBackOff returns the wait progression for one invocation. Create a
// backoff per invocation; they're not thread safe.
func (c *config) newBackOff() backoff.BackOff {
	if c.policy != nil {
		c.policy.Reset()
		return c.policy
	}

	if !c.backoffEnabled {
		return backoff.NewConstantBackOff(c.initialDelay)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialDelay
	bo.Multiplier = 2
	// Waits double exactly; jitter is the caller's business, via
	// WithBackOffPolicy, if they want it.
	bo.RandomizationFactor = 0
	bo.MaxInterval = c.maxDelay
	if c.maxDelay <= 0 {
		bo.MaxInterval = time.Duration(math.MaxInt64)
	}
	bo.Reset()

	return bo
}

// wait sleeps for delay, honouring cancellation. The context is checked
// again after a natural expiry: if cancellation raced the timer, the caller
// must see it rather than carry on to another attempt.
func wait(ctx context.Context, delay time.Duration) error {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return ctx.Err()
}
