package ratelimit

import (
	"context"
	"testing"
	"time"
)

// =============================================================================
// Limiter Tests
// =============================================================================

func TestNewLimiter_Disabled(t *testing.T) {
	l := NewLimiter(0, 0)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 50; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("disabled limiter blocked for %v", elapsed)
	}
}

func TestLimiter_RateEnforced(t *testing.T) {
	// 10 req/s with burst 1: 5 requests need roughly 400ms.
	l := NewLimiter(10, 1)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("5 requests at 10 req/s took %v, limiter not enforcing", elapsed)
	}
}

func TestLimiter_DelayEnforced(t *testing.T) {
	l := NewLimiter(0, 0)
	l.SetDelay(50 * time.Millisecond)

	ctx := context.Background()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second Wait() returned after %v, want the politeness delay honored", elapsed)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := NewLimiter(0.1, 1)

	ctx := context.Background()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	cancelled, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// The bucket is drained; the next Wait must respect the context.
	if err := l.Wait(cancelled); err == nil {
		t.Error("Wait() with expired context should error")
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow() {
		t.Error("Allow() = false with a full bucket")
	}
	if l.Allow() {
		t.Error("Allow() = true with a drained bucket")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.Allow()

	l.SetRate(1000, 100)
	time.Sleep(10 * time.Millisecond)
	if !l.Allow() {
		t.Error("Allow() = false after raising the rate")
	}
}
