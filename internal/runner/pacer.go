package runner

import (
	"context"

	"golang.org/x/time/rate"
)

// tickPacer spaces ticks 1/tps apart using a token bucket with burst 1.
// Standard fixed-interval ticking: no compensation for scheduler drift.
type tickPacer struct {
	limiter *rate.Limiter
}

func newTickPacer(tps int) *tickPacer {
	if tps < 1 {
		tps = 1
	}
	return &tickPacer{limiter: rate.NewLimiter(rate.Limit(tps), 1)}
}

func (p *tickPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
