package embedder

import (
	"context"
	"time"
)

// Backoff schedule for provider API calls.
const (
	maxAttempts    = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
	backoffFactor  = 2.0
)

// backoffPolicy describes how failed API calls are reattempted.
type backoffPolicy struct {
	attempts int           // Total attempts, including the first
	initial  time.Duration // Delay before the second attempt
	cap      time.Duration // Upper bound on the delay
	factor   float64       // Growth factor between attempts
}

func defaultBackoff() backoffPolicy {
	return backoffPolicy{
		attempts: maxAttempts,
		initial:  initialBackoff,
		cap:      maxBackoff,
		factor:   backoffFactor,
	}
}

// withRetries runs fn until it succeeds, the attempt budget is spent, or ctx
// is done. The delay between attempts grows geometrically up to the cap.
// A cancelled context wins over the last attempt's error.
func withRetries[T any](ctx context.Context, policy backoffPolicy, fn func() (T, error)) (T, error) {
	var zero T
	delay := policy.initial

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if attempt >= policy.attempts {
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * policy.factor)
		if delay > policy.cap {
			delay = policy.cap
		}
	}
}
