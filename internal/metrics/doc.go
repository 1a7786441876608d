// Package metrics models submission outcomes and reduces them into the
// per-step and overall statistics the harness reports.
//
// The package has two halves. The pure half — [Classify], [ReduceStep],
// [Summarize] — is deterministic and side-effect free: the step driver hands
// it a drained outcome collection and gets back an immutable [StepResult].
// The stateful half, [Collector], keeps live counters under a mutex so the
// progress reporter can print while a step is still in flight.
package metrics
