package retry

import (
	"context"
	"errors"
	"testing"
)

func TestCanceledError(t *testing.T) {
	err := &CanceledError{Attempt: 2, err: context.Canceled}
	expect := "canceled after attempt 2: context canceled"

	if expect != err.Error() {
		t.Errorf("expected %q, received %q", expect, err.Error())
	}

	if !errors.Is(err, context.Canceled) {
		t.Error("expected the context error to be reachable via errors.Is")
	}
}
