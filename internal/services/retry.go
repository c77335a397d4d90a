package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

const retryMaxAttempts = 5

// Overridable in tests to avoid real backoff sleeps.
var retryBaseDelay = 500 * time.Millisecond

// isRateLimited reports whether err carries an upstream rate-limit signal.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "resource_exhausted")
}

// withRetry runs op up to retryMaxAttempts times, backing off exponentially
// between attempts (500ms, 1s, 2s, 4s). Only rate-limit failures are retried;
// anything else aborts immediately. After exhausting the budget the last
// error is surfaced.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < retryMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = op()
		if err == nil || !isRateLimited(err) {
			return err
		}
	}
	return err
}
