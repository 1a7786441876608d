package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/loadworks/paystress/internal/metrics"
)

// outcomeBuffer sizes the channel between submissions and the collector
// goroutine. Submissions block on it only if the collector falls behind.
const outcomeBuffer = 256

// runStep drives one fixed-rate window: spawn one submission per pacing
// tick until the window closes, then join every outstanding submission and
// reduce the collected outcomes. Spawning never waits on completions.
func (r *Ramp) runStep(ctx context.Context, targetTPS int) (metrics.StepResult, error) {
	pacer := r.opt.PacerFactory(targetTPS)

	// The deadline bounds emission only. Submissions keep the parent
	// context so in-flight attempts run to completion after the window.
	stepCtx, cancel := context.WithTimeout(ctx, r.plan.stepDuration)
	defer cancel()

	outcomes := make(chan metrics.Outcome, outcomeBuffer)
	var collected []metrics.Outcome
	done := make(chan struct{})
	go func() {
		defer close(done)
		for o := range outcomes {
			collected = append(collected, o)
			if r.opt.Collector != nil {
				r.opt.Collector.RecordOutcome(o)
			}
		}
	}()

	var g errgroup.Group
	for {
		if err := pacer.Wait(stepCtx); err != nil {
			break // window closed
		}
		g.Go(func() error {
			outcome, fatal := r.invoke(ctx)
			outcomes <- outcome
			return fatal
		})
	}

	fatal := g.Wait()
	close(outcomes)
	<-done

	if fatal != nil {
		return metrics.StepResult{}, fatal
	}
	return metrics.ReduceStep(targetTPS, collected), nil
}

// invoke runs one submission and always produces exactly one outcome. A
// panicking submission is absorbed as a classified failure rather than
// taking down the driver; only errors matched by IsFatal escalate, and even
// those leave an outcome behind so the join accounting stays exact.
func (r *Ramp) invoke(ctx context.Context) (outcome metrics.Outcome, fatal error) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = metrics.Failure(metrics.ErrorKindOther)
			fatal = nil
		}
	}()

	latency, err := r.opt.Submitter.Submit(ctx)
	if err == nil {
		return metrics.Success(latency), nil
	}
	if r.opt.IsFatal != nil && r.opt.IsFatal(err) {
		return metrics.Failure(metrics.ErrorKindOther), err
	}
	return metrics.Failure(metrics.Classify(err)), nil
}
