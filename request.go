package retry

import (
	"bytes"
	"io"
	"net/http"
)

// NewRequest wraps the function from net/http, but with the addition of a
// `GetBody` function on that request, so every attempt re-sends the full
// payload.
//
// There's a special case in `net/http` whereby a request which fails part
// way through one attempt will only send the remaining data when retried:
// the transport reads from `Body` where it left off unless `GetBody` hands
// it a fresh copy. A retried upload that died 70mb into a 100mb body would
// otherwise resend only the last 30mb- which is probably broken.
//
// Note: you're probably better off providing your own `req.GetBody`
// function; especially on large requests- this function reads your body
// into memory, persisting a copy of it until the request finally succeeds
// and the copy is garbage collected.
func NewRequest(method, url string, body io.Reader) (*http.Request, error) {
	buf := new(bytes.Buffer)

	_, err := io.Copy(buf, body)
	if err != nil {
		return nil, err
	}

	bb := buf.Bytes()

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		return nil, err
	}

	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(bb)), nil
	}

	return req, nil
}
