package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return errors.New("always fails")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry with cancelled context = %v, want context.Canceled", err)
	}
}

func TestRateLimiterNew(t *testing.T) {
	rl := NewRateLimiter(60)
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait should succeed immediately: %v", err)
	}
}

func TestRateLimiterZeroRateNeverBlocks(t *testing.T) {
	rl := NewRateLimiter(0)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait %d with zero rate = %v, want nil", i, err)
		}
	}
}

func TestRateLimiterReplenishes(t *testing.T) {
	rl := NewRateLimiter(60000) // one token per millisecond
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait %d = %v, want nil", i, err)
		}
	}
}

func TestUTCDayBoundaries(t *testing.T) {
	loc := time.FixedZone("ET", -5*3600)
	// 11 PM ET on Jan 3 is 4 AM UTC on Jan 4.
	ts := time.Date(2025, 1, 3, 23, 0, 0, 0, loc)

	start := UTCDayStart(ts)
	want := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("UTCDayStart = %v, want %v", start, want)
	}

	next := NextUTCDayStart(ts)
	if !next.Equal(want.Add(24 * time.Hour)) {
		t.Errorf("NextUTCDayStart = %v, want %v", next, want.Add(24*time.Hour))
	}

	if !SameUTCDay(start, start.Add(23*time.Hour)) {
		t.Error("SameUTCDay within one day = false, want true")
	}
	if SameUTCDay(start, next) {
		t.Error("SameUTCDay across boundary = true, want false")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if logger := NewLogger(level, "json"); logger == nil {
			t.Errorf("NewLogger(%q) returned nil", level)
		}
	}
	if logger := NewLogger("info", "text"); logger == nil {
		t.Error("NewLogger text format returned nil")
	}
}
