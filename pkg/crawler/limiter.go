package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the single shared gate pacing outbound requests across all
// workers. With a burst of one, the n-th granted permit is never issued
// before start + (n-1)*interval, no matter how many workers are waiting.
// Waiters are served in bounded time; releases are implicit and time-based.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter builds a gate admitting one request per interval.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Limiter{rl: rate.NewLimiter(rate.Every(interval), 1)}
}

// Acquire blocks until the next request may be issued or ctx is cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.rl.Wait(ctx)
}
