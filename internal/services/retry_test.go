package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryBaseDelay
	retryBaseDelay = time.Microsecond
	t.Cleanup(func() { retryBaseDelay = old })
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "googleapi 429", err: &googleapi.Error{Code: http.StatusTooManyRequests}, expected: true},
		{name: "googleapi 500", err: &googleapi.Error{Code: http.StatusInternalServerError}, expected: false},
		{name: "wrapped googleapi 429", err: errors.Join(errors.New("call failed"), &googleapi.Error{Code: 429}), expected: true},
		{name: "quota message", err: errors.New("quota exceeded for model"), expected: true},
		{name: "resource exhausted", err: errors.New("rpc error: RESOURCE_EXHAUSTED"), expected: true},
		{name: "plain failure", err: errors.New("connection refused"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRateLimited(tt.err))
		})
	}
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	calls := 0
	failure := errors.New("bad request")

	err := withRetry(context.Background(), func() error {
		calls++
		return failure
	})

	require.ErrorIs(t, err, failure)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RecoversAfterRateLimit(t *testing.T) {
	fastRetries(t)

	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: 429}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsBudget(t *testing.T) {
	fastRetries(t)

	calls := 0
	limit := &googleapi.Error{Code: 429}

	err := withRetry(context.Background(), func() error {
		calls++
		return limit
	})

	require.ErrorIs(t, err, limit)
	assert.Equal(t, retryMaxAttempts, calls)
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := withRetry(ctx, func() error {
		calls++
		cancel()
		return &googleapi.Error{Code: 429}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
