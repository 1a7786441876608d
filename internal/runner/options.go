package runner

import (
	"context"
	"io"
	"time"

	"github.com/loadworks/paystress/internal/metrics"
)

// Submitter executes one complete submission attempt and reports its
// wall-clock latency. Implementations must be safe for unbounded concurrent
// use; the driver spawns one invocation per pacing tick with no cap on how
// many are in flight.
type Submitter interface {
	Submit(ctx context.Context) (time.Duration, error)
}

// Pacer hands out permission to spawn the next submission. Wait blocks until
// the next tick, or returns an error once the step window has closed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Options configure a Ramp.
type Options struct {
	MaxTPS    int           // peak target rate, reached on the final step
	Duration  time.Duration // total wall-clock budget across all steps
	Steps     int           // number of ramp steps
	Submitter Submitter     // request executor (required)

	// Collector receives live outcome counts for progress reporting.
	// Optional.
	Collector *metrics.Collector

	// Progress receives one line per step announcing the rate under test.
	// nil silences announcements.
	Progress io.Writer

	// IsFatal marks submission errors that abort the run instead of being
	// counted as classified failures. nil treats every error as countable.
	IsFatal func(error) bool

	// PacerFactory is an injection point for tests. nil uses the uniform
	// tick pacer.
	PacerFactory func(tps int) Pacer
}

func (o *Options) normalize() {
	if o.Steps <= 0 {
		o.Steps = 1
	}
	if o.MaxTPS < 0 {
		o.MaxTPS = 0
	}
	if o.Progress == nil {
		o.Progress = io.Discard
	}
	if o.PacerFactory == nil {
		o.PacerFactory = func(tps int) Pacer { return newTickPacer(tps) }
	}
}
