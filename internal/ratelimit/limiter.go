// Package ratelimit provides the politeness limiter for the crawler.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles fetches against the target. It combines a token
// bucket with an optional fixed delay between consecutive requests,
// matching the crawler's be-nice-to-the-server pause.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	delay   time.Duration
	last    time.Time
}

// NewLimiter creates a limiter allowing requestsPerSecond with the
// given burst. A non-positive rate disables the token bucket.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// SetDelay sets the minimum delay between consecutive requests.
func (l *Limiter) SetDelay(delay time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.delay = delay
}

// Wait blocks until the next fetch is allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	delay := l.delay
	last := l.last
	l.mu.Unlock()

	if delay > 0 && !last.IsZero() {
		if elapsed := time.Since(last); elapsed < delay {
			select {
			case <-time.After(delay - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	l.mu.Lock()
	l.last = time.Now()
	l.mu.Unlock()
	return nil
}

// Allow checks if a request is allowed without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetRate updates the rate limit.
func (l *Limiter) SetRate(requestsPerSecond float64, burst int) {
	if requestsPerSecond > 0 {
		l.limiter.SetLimit(rate.Limit(requestsPerSecond))
	} else {
		l.limiter.SetLimit(rate.Inf)
	}
	if burst > 0 {
		l.limiter.SetBurst(burst)
	}
}
