package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/loadworks/paystress/internal/metrics"
)

// Result is the terminal output of a ramp run: the elapsed wall-clock time,
// one record per executed step in ramp order, and the overall summary.
type Result struct {
	TotalDuration time.Duration
	Steps         []metrics.StepResult
	Summary       metrics.Summary
}

// Ramp executes a linear ramp test: equal-length windows at non-decreasing
// target rates, each window fully drained before the next begins. The caller
// is expected to have verified the target service is reachable.
type Ramp struct {
	opt  Options
	plan rampPlan
}

func New(opt Options) *Ramp {
	opt.normalize()
	return &Ramp{
		opt:  opt,
		plan: compileRampPlan(opt.MaxTPS, opt.Steps, opt.Duration),
	}
}

// Run drives every step in order and assembles the final result. It returns
// early only for fatal submission errors (see Options.IsFatal); classified
// failures are part of the statistics, not errors.
func (r *Ramp) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	results := make([]metrics.StepResult, 0, len(r.plan.rates))

	for i, tps := range r.plan.rates {
		if tps == 0 {
			continue
		}

		fmt.Fprintf(r.opt.Progress, "Testing TPS: %d\n", tps)
		if r.opt.Collector != nil {
			r.opt.Collector.BeginStep(i+1, len(r.plan.rates), tps)
		}

		step, err := r.runStep(ctx, tps)
		if err != nil {
			return Result{}, err
		}
		results = append(results, step)
	}

	return Result{
		TotalDuration: time.Since(start),
		Steps:         results,
		Summary:       metrics.Summarize(results),
	}, nil
}
