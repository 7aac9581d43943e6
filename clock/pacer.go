package clock

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between successive calls, for callers
// that poll an upstream and must not do so too fast.  The first call never
// blocks.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer that lets at most one call through per
// minInterval.
func NewPacer(minInterval time.Duration) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the pace allows another call, or until the context is
// canceled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed right now, consuming the slot if
// so.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
