package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	opErr := Tag(errors.New("boom"), "timeout")

	tests := []struct {
		name        string
		err         error
		attempt     int
		maxAttempts int
		kinds       []Kind
		want        decision
	}{
		{"retryable with attempts left", opErr, 1, 3, nil, decisionRetry},
		{"retryable on final attempt", opErr, 3, 3, nil, decisionExhausted},
		{"kind in filter", opErr, 1, 3, []Kind{"timeout"}, decisionRetry},
		{"kind outside filter", opErr, 1, 3, []Kind{"unavailable"}, decisionPropagate},
		{"kind outside filter on final attempt", opErr, 3, 3, []Kind{"unavailable"}, decisionPropagate},
		{"untagged error with filter", errors.New("boom"), 1, 3, []Kind{"timeout"}, decisionPropagate},
		{"single attempt budget", opErr, 1, 1, nil, decisionExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tt.err, tt.attempt, tt.maxAttempts, tt.kinds)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestDo_LoopInvariant pins down that the defensive post-loop branch is
// unreachable: for any attempt budget the loop always terminates through
// success, propagation, or exhaustion, never by falling off the end.
func TestDo_LoopInvariant(t *testing.T) {
	t.Parallel()

	for maxAttempts := 1; maxAttempts <= 5; maxAttempts++ {
		t.Run(fmt.Sprintf("%d attempts", maxAttempts), func(t *testing.T) {
			t.Parallel()

			opErr := errors.New("persistent")

			_, err := Do(context.Background(), func(_ context.Context) (int, error) {
				return 0, opErr
			},
				WithMaxAttempts(maxAttempts),
				WithInitialDelay(0),
			)

			require.NotErrorIs(t, err, errLoopExited)
			require.Same(t, opErr, err)
		})
	}
}
