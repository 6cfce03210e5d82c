package retry

import (
	"context"
	"time"
)

// Hooks observe a retry loop. Any field may be nil.
type Hooks struct {
	// Retryable reports whether err may succeed on another attempt.
	// When nil every error is retried.
	Retryable func(err error) bool
	// OnRetry runs before each wait.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// policy's attempts are used up. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, sleep Sleeper, h Hooks, fn func(ctx context.Context) error) error {
	if sleep == nil {
		sleep = Sleep
	}
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if h.Retryable != nil && !h.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		d := p.Delay(attempt)
		if h.OnRetry != nil {
			h.OnRetry(attempt, d, lastErr)
		}
		if err := sleep(ctx, d); err != nil {
			return err
		}
	}
	return lastErr
}
