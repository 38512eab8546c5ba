package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryPolicy(t *testing.T) {
	for _, s := range []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		assert.True(t, DefaultRetryPolicy.Retryable(s), "%d", s)
	}
	for _, s := range []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError, http.StatusTooManyRequests} {
		assert.False(t, DefaultRetryPolicy.Retryable(s), "%d", s)
	}
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, DefaultRetryPolicy.Delays)
}

func TestRetryPolicy_Do(t *testing.T) {
	boom := errors.New("boom")

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		err := fastPolicy(nil).Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "", boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("retryable error uses the whole table", func(t *testing.T) {
		calls := 0
		var reasons []string
		p := fastPolicy(nil)
		p.OnRetry = func(attempt int, _ time.Duration, reason string) {
			reasons = append(reasons, reason)
			assert.Equal(t, len(reasons), attempt)
		}
		err := p.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "status 503", retry.RetryableError(boom)
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []string{"status 503", "status 503"}, reasons)
	})

	t.Run("empty table means a single attempt", func(t *testing.T) {
		calls := 0
		err := RetryPolicy{}.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "", retry.RetryableError(boom)
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}

func TestAPIError_Is(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: 401}, ErrUnauthorized)
	assert.NotErrorIs(t, &APIError{Status: 403}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: 503}, ErrUnavailable)
	assert.NotErrorIs(t, &APIError{Status: 500}, ErrUnavailable)
}
