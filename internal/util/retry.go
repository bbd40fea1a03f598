package util

import (
	"context"
	"time"
)

// Retry runs fn up to maxAttempts times, doubling the pause between attempts
// starting at baseDelay. It returns nil on the first success, the context
// error if cancelled while pausing, or the last failure once attempts are
// exhausted.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(baseDelay << (attempt - 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
