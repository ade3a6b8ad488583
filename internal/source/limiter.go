package source

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter applies a token-bucket rate per hostname so a fast listing
// pass on one board never starves detail fetches on another.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(reqPerSec),
		burst:    burst,
	}
}

// Acquire blocks until the host's bucket has a token or ctx is done.
func (hl *HostLimiter) Acquire(ctx context.Context, host string) error {
	if host == "" {
		host = "_"
	}
	hl.mu.Lock()
	lim, ok := hl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(hl.rps, hl.burst)
		hl.limiters[host] = lim
	}
	hl.mu.Unlock()

	return lim.Wait(ctx)
}
