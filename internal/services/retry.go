package services

import (
	"context"
	"time"
)

// RetryPolicy bounds retries of transient collaborator failures.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy retries twice after the initial attempt with a short
// fixed delay.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 2 * time.Second}

// Retry runs op up to policy.Attempts times, sleeping between attempts.
// Only errors classified Retryable are retried; other errors surface
// immediately. The context cancels the wait between attempts.
func Retry(ctx context.Context, policy RetryPolicy, op func() error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !Retryable(lastErr) || attempt == attempts-1 {
			return lastErr
		}
		select {
		case <-time.After(policy.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
