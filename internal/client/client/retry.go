package client

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes which responses are retried and how long to wait
// before each retry. The number of retries equals len(Delays).
type RetryPolicy struct {
	Statuses []int
	Delays   []time.Duration

	// OnRetry, when set, observes every scheduled retry.
	OnRetry func(attempt int, delay time.Duration, reason string)
}

// DefaultRetryPolicy retries gateway failures twice, after 1s and 2s.
var DefaultRetryPolicy = RetryPolicy{
	Statuses: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	Delays:   []time.Duration{1 * time.Second, 2 * time.Second},
}

// Retryable reports whether status is in the retry set.
func (p RetryPolicy) Retryable(status int) bool {
	return slices.Contains(p.Statuses, status)
}

// attemptFunc performs one attempt. A retryable failure is returned through
// retry.RetryableError together with a short reason for OnRetry.
type attemptFunc func(ctx context.Context) (reason string, err error)

// Do runs attempt until it succeeds, fails permanently or the delay table is
// exhausted. After the last retry the unwrapped error of the final attempt is
// returned.
func (p RetryPolicy) Do(ctx context.Context, attempt attemptFunc) error {
	var (
		n      int
		reason string
	)

	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		if n >= len(p.Delays) {
			return 0, true
		}
		d := p.Delays[n]
		n++
		if p.OnRetry != nil {
			p.OnRetry(n, d, reason)
		}
		return d, false
	})

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		reason, err = attempt(ctx)
		return err
	})
}
