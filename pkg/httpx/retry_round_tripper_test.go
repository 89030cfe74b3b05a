package httpx_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"resell_margin/pkg/httpx"
)

func TestRetryRoundTripper(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name          string
		statusCodes   []int
		maxRetries    int
		wantStatus    int
		wantCallCount int32
	}{
		{
			name:          "Success first try",
			statusCodes:   []int{http.StatusOK},
			maxRetries:    2,
			wantStatus:    http.StatusOK,
			wantCallCount: 1,
		},
		{
			name:          "Retries on 503 then succeeds",
			statusCodes:   []int{http.StatusServiceUnavailable, http.StatusOK},
			maxRetries:    2,
			wantStatus:    http.StatusOK,
			wantCallCount: 2,
		},
		{
			name:          "Retries on 429 then succeeds",
			statusCodes:   []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
			maxRetries:    2,
			wantStatus:    http.StatusOK,
			wantCallCount: 3,
		},
		{
			name:          "Gives up after retry ceiling",
			statusCodes:   []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError},
			maxRetries:    2,
			wantStatus:    http.StatusInternalServerError,
			wantCallCount: 3,
		},
		{
			name:          "Validation failure is not retried",
			statusCodes:   []int{http.StatusBadRequest},
			maxRetries:    2,
			wantStatus:    http.StatusBadRequest,
			wantCallCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var calls atomic.Int32

			httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				rq.NoError(err)
				rq.Equal(`{"q":"retry"}`, string(body), "request body must be replayed on every attempt")

				n := calls.Add(1)
				w.WriteHeader(tc.statusCodes[n-1])
			}))
			defer httpServer.Close()

			client := &http.Client{
				Transport: httpx.NewRetryRoundTripper(http.DefaultTransport, tc.maxRetries),
			}

			req, err := http.NewRequestWithContext(
				context.Background(),
				http.MethodPost,
				httpServer.URL,
				bytes.NewReader([]byte(`{"q":"retry"}`)),
			)
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.wantStatus, resp.StatusCode)
			rq.Equal(tc.wantCallCount, calls.Load())
		})
	}
}
