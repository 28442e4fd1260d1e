// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across pipeline stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const (
	defaultMaxRetries = 3
	maxBackoff        = 30 * time.Second
)

// Retryable reports whether an HTTP status code signals a transient
// failure worth retrying: 429 or any 5xx. Other 4xx responses (401, 403,
// malformed queries) fail fast.
func Retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// DoWithRetry executes an HTTP request and retries connection errors, 5xx
// responses, and HTTP 429 with exponential backoff (RetryBaseDelay doubled
// each attempt, capped at 30s). When maxRetries is 0 the default (3) is
// used.
//
// On each retryable response the body is drained and closed before
// sleeping, so the underlying connection can be reused. If the
// context is cancelled during a backoff wait the function returns
// ctx.Err(). After exhausting retries the last response (or the last
// connection error) is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil && !Retryable(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = nil
		}

		// Exhausted retries: surface whatever we saw last.
		if attempt >= maxRetries {
			if lastErr != nil {
				return nil, lastErr
			}
			return resp, nil
		}

		if resp != nil {
			// Drain and close the body before retrying so the
			// keep-alive connection can be reused.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(Backoff(attempt)):
		}
	}
}

// Backoff returns the delay before retry number attempt (0-based):
// RetryBaseDelay × 2^attempt, capped at 30s. Pure so it is testable
// without sleeping.
func Backoff(attempt int) time.Duration {
	d := RetryBaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
