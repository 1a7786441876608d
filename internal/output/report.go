// Package output renders ramp results as JSON documents, files and
// human-readable summaries, plus the live progress line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/oklog/ulid/v2"

	"github.com/loadworks/paystress/internal/metrics"
)

// Report is the terminal JSON document for one ramp run.
type Report struct {
	RunID             string               `json:"run_id"`
	TotalDurationSecs uint64               `json:"total_duration_secs"`
	Results           []metrics.StepResult `json:"results"`
	Summary           metrics.Summary      `json:"summary"`
}

// NewReport stamps a fresh run identifier onto a finished ramp result.
func NewReport(total time.Duration, results []metrics.StepResult, summary metrics.Summary) Report {
	return Report{
		RunID:             ulid.Make().String(),
		TotalDurationSecs: uint64(total / time.Second),
		Results:           results,
		Summary:           summary,
	}
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteFile writes the report to path under a sibling advisory lock, so
// concurrent runs sharing an output path cannot interleave writes.
func WriteFile(path string, rep Report) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock output file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// PrintReport outputs a human-readable summary of the run.
func PrintReport(w io.Writer, rep Report) {
	fmt.Fprintln(w, "\n--- Ramp Test Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", rep.RunID)
	fmt.Fprintf(w, "Total Duration:    %ds\n", rep.TotalDurationSecs)

	fmt.Fprintln(w, "\nSteps:")
	for _, step := range rep.Results {
		m := step.Metrics
		fmt.Fprintf(w, "  TPS %-4d total=%d ok=%d failed=%d success=%.1f%% avg=%.1fms p99=%.1fms\n",
			m.TargetTPS, m.TotalTxs, m.SuccessfulTxs, m.FailedTxs,
			m.SuccessRate*100, m.AvgLatencyMs, m.P99LatencyMs)
		if e := step.ErrorBreakdown; e != (metrics.ErrorBreakdown{}) {
			fmt.Fprintf(w, "           errors: nonce=%d timeout=%d relayer=%d json-rpc=%d other=%d\n",
				e.NonceConflicts, e.Timeouts, e.RelayerExhaustion, e.JSONRPCErrors, e.Other)
		}
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  Max Sustainable TPS:  %d\n", rep.Summary.MaxSustainableTPS)
	fmt.Fprintf(w, "  Total Transactions:   %d\n", rep.Summary.TotalTransactions)
	fmt.Fprintf(w, "  Overall Success Rate: %.1f%%\n", rep.Summary.OverallSuccessRate*100)
}
