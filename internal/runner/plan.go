package runner

import "time"

// rampPlan holds the precomputed schedule for a linear ramp: one target rate
// per step over equal-length windows.
type rampPlan struct {
	rates        []int
	stepDuration time.Duration
}

// compileRampPlan derives the step schedule. Rates are maxTPS*i/steps using
// integer division, so the sequence is non-decreasing and the final step
// lands exactly on maxTPS. Zero-rate steps stay in the schedule and are
// skipped at execution time.
func compileRampPlan(maxTPS, steps int, total time.Duration) rampPlan {
	rates := make([]int, steps)
	for i := 1; i <= steps; i++ {
		rates[i-1] = maxTPS * i / steps
	}
	return rampPlan{
		rates:        rates,
		stepDuration: total / time.Duration(steps),
	}
}
