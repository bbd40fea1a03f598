package util

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces operations at a fixed per-minute rate using a token
// bucket with a burst of one. A non-positive rate disables pacing; callers
// that need a hard floor must validate their configuration instead.
type RateLimiter struct {
	mu     sync.Mutex
	perSec float64
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a RateLimiter that allows perMinute operations per
// minute. The first Wait never blocks.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perSec: float64(perMinute) / 60.0,
		tokens: 1,
		last:   time.Now(),
	}
}

// Wait blocks until a rate-limit token is available or the context is
// cancelled. With pacing disabled it returns immediately.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.perSec <= 0 {
		return ctx.Err()
	}
	for {
		rl.mu.Lock()
		now := time.Now()
		rl.tokens += now.Sub(rl.last).Seconds() * rl.perSec
		if rl.tokens > 1 {
			rl.tokens = 1
		}
		rl.last = now

		if rl.tokens >= 1 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		// Sleep for the remaining deficit, then re-check under the lock in
		// case another waiter took the token first.
		wait := time.Duration((1 - rl.tokens) / rl.perSec * float64(time.Second))
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
