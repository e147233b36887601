package retry_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	retry "github.com/FeatherAndScale/RetryHelper"
)

func ExampleDo() {
	attempts := 0

	greeting, err := retry.Do(context.Background(), func(_ context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", retry.Tag(errors.New("upstream unavailable"), "unavailable")
		}

		return "hello, world!", nil
	},
		retry.WithMaxAttempts(5),
		retry.WithInitialDelay(10*time.Millisecond),
		retry.WithRetryableKinds("unavailable"),
	)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s after %d attempts", greeting, attempts)
	// Output: hello, world! after 3 attempts
}

func ExampleRun() {
	err := retry.Run(context.Background(), func(_ context.Context) error {
		return pingDatabase()
	},
		retry.WithMaxAttempts(3),
		retry.WithInitialDelay(10*time.Millisecond),
	)

	fmt.Println(err == nil)
	// Output: true
}

func pingDatabase() error { return nil }

func ExampleHTTPClient_DoWithContext() {
	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if err != nil {
		panic(err)
	}

	c := retry.NewHTTPClient()
	ctx := retry.NewContext()

	resp, err := c.DoWithContext(ctx, req)
	if err != nil {
		panic(err)
	}

	fmt.Println(resp.Status)

	attempts, ok := retry.AttemptsFromContext(ctx)
	if !ok {
		fmt.Println("unable to get attempt count")
	}

	fmt.Printf("It took %d attempts to successfully make this call", attempts)

	duration, ok := retry.SuccessfulAttemptDurationFromContext(ctx)
	if !ok {
		fmt.Println("unable to get attempt duration")
	}

	fmt.Printf("The successful attempt ran with a duration of %s", duration)
}
