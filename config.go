package retry

import (
	"io"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
)

const (
	// DefaultMaxAttempts is the total number of attempts made when the caller
	// doesn't say otherwise. The first call isn't a retry, it's a _try_, so
	// this allows two retries.
	DefaultMaxAttempts = 3

	// DefaultInitialDelay is the wait before the second attempt.
	DefaultInitialDelay = time.Second
)

// config collects the knobs for a single Do or Run invocation. It is built
// fresh from the Options on every call and never shared.
type config struct {
	maxAttempts    int
	initialDelay   time.Duration
	maxDelay       time.Duration
	backoffEnabled bool
	kinds          []Kind
	logger         *slog.Logger
	policy         backoff.BackOff
}

// An Option adjusts a single invocation of Do or Run.
type Option func(*config)

func newConfig(opts []Option) *config {
	c := &config{
		maxAttempts:    DefaultMaxAttempts,
		initialDelay:   DefaultInitialDelay,
		backoffEnabled: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxAttempts < 1 {
		// One attempt is the floor; zero would mean never running the
		// operation at all.
		c.maxAttempts = 1
	}

	if c.initialDelay < 0 {
		c.initialDelay = 0
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}

// WithMaxAttempts sets the total number of attempts, the first included.
// Values below 1 are treated as 1: a single attempt with no retry.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithInitialDelay sets the wait before the second attempt. With backoff
// enabled every later wait doubles from here; negative values are treated
// as zero, meaning no wait at all.
func WithInitialDelay(d time.Duration) Option {
	return func(c *config) {
		c.initialDelay = d
	}
}

// WithMaxDelay caps how far the doubling can grow a single wait. The zero
// value leaves waits uncapped.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithBackoff turns the doubling of waits on or off. Off means every wait
// equals the initial delay. Defaults to on.
func WithBackoff(enabled bool) Option {
	return func(c *config) {
		c.backoffEnabled = enabled
	}
}

// WithRetryableKinds restricts retries to failures matching one of the given
// kinds exactly; any other failure propagates on first occurrence. Without
// this option every failure is retryable.
func WithRetryableKinds(kinds ...Kind) Option {
	return func(c *config) {
		c.kinds = kinds
	}
}

// WithLogger sets the sink for attempt-by-attempt progress records. Without
// it (or with nil) the executor is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithBackOffPolicy replaces the built-in wait progression with any
// cenkalti/backoff policy. It overrides WithInitialDelay, WithMaxDelay and
// WithBackoff. The policy is Reset at the start of the invocation; policies
// aren't thread safe, so don't share one across concurrent calls.
func WithBackOffPolicy(policy backoff.BackOff) Option {
	return func(c *config) {
		c.policy = policy
	}
}
