package retry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

// Failure kinds reported by the HTTP client. Transport hiccups and
// server-side failures deserve another go; client errors do not, and are
// left untagged so the executor propagates them straight away.
const (
	// KindTransport covers connection-level failures from the underlying
	// round trip.
	KindTransport Kind = "transport"

	// KindRateLimited covers `429 Too Many Requests`.
	KindRateLimited Kind = "rate_limited"

	// KindServerError covers 5xx statuses.
	KindServerError Kind = "server_error"
)

var (
	// The following error strings are used to determine whether an http
	// request has failed in an exciting way. The net/http package doesn't
	// use specific error types that we can plug into `errors.Is(err, ..)`,
	// nor does it export these strings. In actual fact, net/http returns errors
	// as magic strings, wrapped in `errors.New(..)` and then further wrapped with
	// request context- so we can't even use string equality checking.
	//
	// Thanks Rob Pike
	redirectErrorString      = regexp.MustCompile("stopped after 10 redirects")
	untrustedCertErrorString = regexp.MustCompile("certificate is not trusted")

	// default429RetryDelay is used in the case of 429s that don't set the
	// Retry-After header, which only _may_ be included according to rfc6585.
	//
	// To understand the semantics of the word _may_, please see rfc2119
	default429RetryDelay = time.Second
)

// An HTTPClient wraps a net/http client with the retry executor, allowing
// for transient failures to be retried
type HTTPClient struct {
	*http.Client

	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Logger       *slog.Logger
}

// NewHTTPClient returns an HTTPClient with some retry logic attached,
// wrapping a fresh pooled client rather than sharing http.DefaultClient
// with the rest of the process
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second * 30,
		Client:       cleanhttp.DefaultPooledClient(),
	}
}

// DoWithContext wraps the http.Client.Do function, accepting an additional
// context which cancels waits between attempts and can be used to return
// metadata about this call, including attempt counts, durations, and so on.
//
// DoWithContext will return an early error if the url in the request has an
// error, if the server redirects too many times, if the server has a dodgy
// cert, or if the server returns a non-429 4xx error.
//
// Anything else is retried, honouring the Retry-After header on 429s. On
// failure the response has already been closed and only the error is
// returned.
func (h *HTTPClient) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	metadata, ok := callMetadataFrom(ctx)
	if !ok {
		// If we get a context not created by NewContext() then that's
		// cool, we just won't be able to do anything with it
		metadata = new(callMetadata)
	}

	metadata.attempts = 0

	attempt := func(_ context.Context) (*http.Response, error) {
		metadata.attempts++

		start := time.Now()
		resp, err := h.Do(req)
		requestDuration := time.Since(start)

		if err != nil {
			switch {
			case redirectErrorString.MatchString(err.Error()),
				untrustedCertErrorString.MatchString(err.Error()):
				// Untagged, so the executor propagates without retrying
				return nil, err
			}

			// Any further error may be transient and, as such, is
			// retryable
			return nil, Tag(err, KindTransport)
		}

		// If we are being rate limited, attach how long to wait; this
		// overrides the configured delay for the next attempt.
		if resp.StatusCode == http.StatusTooManyRequests {
			delay := retryAfterDelay(resp)
			resp.Body.Close()

			return nil, After(Tag(errors.New(resp.Status), KindRateLimited), delay)
		}

		// Treat any non 429 client error as a permanent error
		if resp.StatusCode/100 == 4 {
			resp.Body.Close()

			return nil, errors.New(resp.Status)
		}

		// Treat any other non-2xx status as a transient error (the client
		// already follows 3xx redirects, so we're in no danger of breaking
		// those here)
		if resp.StatusCode/100 != 2 {
			resp.Body.Close()

			return nil, Tag(errors.New(resp.Status), KindServerError)
		}

		// If we get this far, the attempt succeeded; update the duration,
		// and return
		metadata.successfulDuration = requestDuration

		return resp, nil
	}

	return Do(ctx, attempt,
		WithMaxAttempts(h.MaxAttempts),
		WithInitialDelay(h.InitialDelay),
		WithMaxDelay(h.MaxDelay),
		WithRetryableKinds(KindTransport, KindRateLimited, KindServerError),
		WithLogger(h.Logger),
	)
}

// retryAfterDelay reads a 429's Retry-After header, falling back to
// default429RetryDelay when it is missing or unparseable.
func retryAfterDelay(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return default429RetryDelay
	}

	seconds, err := strconv.ParseInt(ra, 10, 64)
	if err != nil {
		return default429RetryDelay
	}

	return time.Duration(seconds) * time.Second
}
