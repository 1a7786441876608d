package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// sustainableThreshold is the success rate a step must strictly exceed for
// its target rate to count as sustained.
const sustainableThreshold = 0.95

// Histogram bounds: 1µs up to 60s with 3 significant figures.
const (
	histMinLatencyUs = 1
	histMaxLatencyUs = 60_000_000
	histSigFigs      = 3
)

// TxMetrics holds the per-step transaction counters. Field names mirror the
// report schema.
type TxMetrics struct {
	SuccessfulTxs uint64  `json:"successful_txs"`
	FailedTxs     uint64  `json:"failed_txs"`
	TotalTxs      uint64  `json:"total_txs"`
	TargetTPS     int     `json:"target_tps"`
	SuccessRate   float64 `json:"success_rate"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P99LatencyMs  float64 `json:"p99_latency_ms"`
}

// ErrorBreakdown counts classified failures per category.
type ErrorBreakdown struct {
	NonceConflicts    uint64 `json:"nonce_conflicts"`
	Timeouts          uint64 `json:"timeouts"`
	RelayerExhaustion uint64 `json:"relayer_exhaustion"`
	JSONRPCErrors     uint64 `json:"json_rpc_errors"`
	Other             uint64 `json:"other"`
}

func (b *ErrorBreakdown) record(kind ErrorKind) {
	switch kind {
	case ErrorKindNonceConflict:
		b.NonceConflicts++
	case ErrorKindTimeout:
		b.Timeouts++
	case ErrorKindServiceUnavailable:
		b.RelayerExhaustion++
	case ErrorKindProtocol:
		b.JSONRPCErrors++
	default:
		b.Other++
	}
}

// StepResult is the immutable statistics record for one executed ramp step.
type StepResult struct {
	Metrics        TxMetrics      `json:"metrics"`
	ErrorBreakdown ErrorBreakdown `json:"error_breakdown"`
}

// Summary is the overall result across all executed steps.
type Summary struct {
	MaxSustainableTPS  int     `json:"max_sustainable_tps"`
	TotalTransactions  uint64  `json:"total_transactions"`
	OverallSuccessRate float64 `json:"overall_success_rate"`
}

// ReduceStep folds one step's outcomes into a StepResult. It is pure and
// deterministic: the same outcome collection always yields an identical
// record.
func ReduceStep(targetTPS int, outcomes []Outcome) StepResult {
	var (
		metrics   = TxMetrics{TargetTPS: targetTPS}
		breakdown ErrorBreakdown
		sum       time.Duration
	)

	hist := hdrhistogram.New(histMinLatencyUs, histMaxLatencyUs, histSigFigs)

	for _, o := range outcomes {
		if o.Failed {
			metrics.FailedTxs++
			breakdown.record(o.Kind)
			continue
		}
		metrics.SuccessfulTxs++
		sum += o.Latency

		us := o.Latency.Microseconds()
		if us < histMinLatencyUs {
			us = histMinLatencyUs
		}
		if us > histMaxLatencyUs {
			us = histMaxLatencyUs
		}
		_ = hist.RecordValue(us)
	}

	metrics.TotalTxs = metrics.SuccessfulTxs + metrics.FailedTxs
	if metrics.TotalTxs > 0 {
		metrics.SuccessRate = float64(metrics.SuccessfulTxs) / float64(metrics.TotalTxs)
	}
	if metrics.SuccessfulTxs > 0 {
		mean := sum / time.Duration(metrics.SuccessfulTxs)
		metrics.AvgLatencyMs = float64(mean) / float64(time.Millisecond)
		metrics.P50LatencyMs = float64(hist.ValueAtQuantile(50)) / 1000
		metrics.P99LatencyMs = float64(hist.ValueAtQuantile(99)) / 1000
	}

	return StepResult{Metrics: metrics, ErrorBreakdown: breakdown}
}

// Summarize folds the ordered step results into the overall summary. The
// sustainable rate is the highest target rate whose step strictly exceeded
// the success threshold; every step weighs equally in the overall success
// rate regardless of how many transactions it issued.
func Summarize(results []StepResult) Summary {
	var summary Summary
	if len(results) == 0 {
		return summary
	}

	var rateSum float64
	for _, r := range results {
		summary.TotalTransactions += r.Metrics.SuccessfulTxs
		rateSum += r.Metrics.SuccessRate
		if r.Metrics.SuccessRate > sustainableThreshold && r.Metrics.TargetTPS > summary.MaxSustainableTPS {
			summary.MaxSustainableTPS = r.Metrics.TargetTPS
		}
	}
	summary.OverallSuccessRate = rateSum / float64(len(results))
	return summary
}
