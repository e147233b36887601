package retry

import (
	"context"
	"time"
)

// callMetadata is stored as a pointer inside our contexts so the executor's
// HTTP wrapper can report back how a call went
type callMetadata struct {
	attempts           int
	successfulDuration time.Duration
}

// callMetadataContextKey is used to key metadata within contexts
type callMetadataContextKey struct{}

// NewContext returns a context.Context preseeded for DoWithContext use,
// ready to collect per-call metadata
func NewContext() context.Context {
	return context.WithValue(context.Background(), callMetadataContextKey{}, new(callMetadata))
}

func callMetadataFrom(ctx context.Context) (*callMetadata, bool) {
	v := ctx.Value(callMetadataContextKey{})

	ptr, ok := v.(*callMetadata)

	return ptr, ok
}

// AttemptsFromContext may be used to return the number of attempts the last
// DoWithContext call on this context made, successful or not
func AttemptsFromContext(ctx context.Context) (int, bool) {
	md, ok := callMetadataFrom(ctx)
	if !ok {
		return 0, false
	}

	return md.attempts, true
}

// SuccessfulAttemptDurationFromContext may be used to return how long the
// successful attempt took, should there have been one
func SuccessfulAttemptDurationFromContext(ctx context.Context) (time.Duration, bool) {
	md, ok := callMetadataFrom(ctx)
	if !ok {
		return 0, false
	}

	return md.successfulDuration, true
}
