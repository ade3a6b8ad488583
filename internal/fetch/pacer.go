package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer is the courtesy pause the orchestrator takes between batches. The
// policy is fixed at construction and decoupled from the batch loop itself.
type Pacer interface {
	Pause(ctx context.Context) error
}

// NopPacer never pauses. Used by tests and by callers that rate-limit
// elsewhere.
type NopPacer struct{}

func (NopPacer) Pause(context.Context) error { return nil }

// FixedDelayPacer sleeps a constant interval, honoring cancellation.
type FixedDelayPacer struct {
	Delay time.Duration
}

func (p FixedDelayPacer) Pause(ctx context.Context) error {
	if p.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TokenBucketPacer paces batches through a token bucket, so a burst of small
// batches can run back to back before the steady rate kicks in.
type TokenBucketPacer struct {
	lim *rate.Limiter
}

func NewTokenBucketPacer(interval time.Duration, burst int) *TokenBucketPacer {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucketPacer{lim: rate.NewLimiter(rate.Every(interval), burst)}
}

func (p *TokenBucketPacer) Pause(ctx context.Context) error {
	return p.lim.Wait(ctx)
}
