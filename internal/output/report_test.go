package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/loadworks/paystress/internal/metrics"
)

func sampleReport() Report {
	steps := []metrics.StepResult{
		{
			Metrics: metrics.TxMetrics{
				SuccessfulTxs: 9, FailedTxs: 1, TotalTxs: 10,
				TargetTPS: 2, SuccessRate: 0.9, AvgLatencyMs: 42.5,
			},
			ErrorBreakdown: metrics.ErrorBreakdown{NonceConflicts: 1},
		},
	}
	return NewReport(7*time.Second, steps, metrics.Summarize(steps))
}

func TestNewReportStampsRunID(t *testing.T) {
	rep := sampleReport()
	if len(rep.RunID) != 26 {
		t.Fatalf("run id %q is not a ULID", rep.RunID)
	}
	if rep.TotalDurationSecs != 7 {
		t.Fatalf("total duration = %d, want 7", rep.TotalDurationSecs)
	}

	other := sampleReport()
	if other.RunID == rep.RunID {
		t.Fatal("run ids must be unique per report")
	}
}

func TestWriteJSONSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"run_id", "total_duration_secs", "results", "summary"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("document missing %q:\n%s", key, buf.String())
		}
	}

	var results []map[string]json.RawMessage
	if err := json.Unmarshal(doc["results"], &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	for _, key := range []string{"metrics", "error_breakdown"} {
		if _, ok := results[0][key]; !ok {
			t.Fatalf("result entry missing %q", key)
		}
	}

	for _, field := range []string{"successful_txs", "failed_txs", "total_txs", "target_tps", "success_rate", "avg_latency_ms"} {
		if !strings.Contains(buf.String(), field) {
			t.Fatalf("metrics missing field %q", field)
		}
	}
	for _, field := range []string{"nonce_conflicts", "timeouts", "relayer_exhaustion", "json_rpc_errors", "other"} {
		if !strings.Contains(buf.String(), field) {
			t.Fatalf("error breakdown missing field %q", field)
		}
	}
	for _, field := range []string{"max_sustainable_tps", "total_transactions", "overall_success_rate"} {
		if !strings.Contains(buf.String(), field) {
			t.Fatalf("summary missing field %q", field)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	rep := sampleReport()

	if err := WriteFile(path, rep); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if got.RunID != rep.RunID {
		t.Fatalf("round-tripped run id = %q, want %q", got.RunID, rep.RunID)
	}
	if got.Summary != rep.Summary {
		t.Fatalf("round-tripped summary = %+v, want %+v", got.Summary, rep.Summary)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleReport())

	out := buf.String()
	for _, want := range []string{"Ramp Test Results", "Max Sustainable TPS", "Total Transactions", "nonce=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report output missing %q:\n%s", want, out)
		}
	}
}
