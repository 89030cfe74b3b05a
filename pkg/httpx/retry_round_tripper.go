package httpx

import (
	"fmt"
	"net/http"
	"time"
)

const defaultRetryDelay = 500 * time.Millisecond

// RetryRoundTripper implements http.RoundTripper and repeats requests that
// failed transiently, a fixed number of times with a fixed delay.
//
// Only use it for idempotent-safe calls: write operations must go through a
// transport without this round tripper, retrying those is the caller's
// decision.
type RetryRoundTripper struct {
	next       http.RoundTripper
	maxRetries int
	delay      time.Duration
}

// NewRetryRoundTripper returns a new retrying RoundTripper instance.
func NewRetryRoundTripper(next http.RoundTripper, maxRetries int) RetryRoundTripper {
	return RetryRoundTripper{
		next:       next,
		maxRetries: maxRetries,
		delay:      defaultRetryDelay,
	}
}

// RoundTrip implements http.RoundTripper interface.
func (rt RetryRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := rt.next.RoundTrip(req)

	for attempt := 0; attempt < rt.maxRetries; attempt++ {
		if err == nil && !isTransientStatus(resp.StatusCode) {
			return resp, nil
		}

		// A consumed body without GetBody cannot be replayed.
		if req.Body != nil && req.GetBody == nil {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err() //nolint:wrapcheck
		case <-time.After(rt.delay):
		}

		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("req.GetBody: %w", bodyErr)
			}

			req.Body = body
		}

		resp, err = rt.next.RoundTrip(req)
	}

	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}

// isTransientStatus reports the statuses that are safe to repeat for read
// calls: request timeout, rate limiting and server-side failures.
func isTransientStatus(statusCode int) bool {
	if statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests {
		return true
	}

	return statusCode >= 500 && statusCode <= 599
}
