// Package runner contains the rate-controlled load driver at the heart of
// paystress.
//
// A [Ramp] partitions the total test duration into equal windows and runs
// them strictly in order, one target rate per window. Within a window the
// pacing loop waits on a [Pacer] tick, spawns one goroutine per tick for the
// configured [Submitter], and never blocks on submissions already in flight;
// rate control lives entirely in emission, not in capping concurrency. When
// the window closes the driver stops spawning but still joins every
// outstanding submission, so each spawned attempt contributes exactly one
// outcome to the step's statistics.
//
// # Usage
//
//	ramp := runner.New(runner.Options{
//		MaxTPS:    50,
//		Duration:  10 * time.Second,
//		Steps:     5,
//		Submitter: mySubmitter,
//	})
//	result, err := ramp.Run(ctx)
//
// The [Submitter] interface is the only integration point:
//
//	type Submitter interface {
//		Submit(ctx context.Context) (time.Duration, error)
//	}
//
// Submission errors are classified and counted, never propagated. The one
// exception is errors matched by Options.IsFatal, which indicate a contract
// breach with the target service and abort the run.
package runner
