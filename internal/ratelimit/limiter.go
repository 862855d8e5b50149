// Package ratelimit wraps golang.org/x/time/rate for outbound provider calls.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter is a named token bucket. A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond with an equal burst.
// A non-positive rate returns nil, which disables limiting.
func New(name string, requestsPerSecond int) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a limiter with a custom burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether a request may proceed now, consuming a token if so.
// It never blocks.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

// Name returns the limiter name.
func (l *Limiter) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}
