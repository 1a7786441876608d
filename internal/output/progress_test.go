package output

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/loadworks/paystress/internal/metrics"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressReporterWritesUpdates(t *testing.T) {
	collector := metrics.NewCollector()
	collector.BeginStep(1, 5, 2)
	collector.RecordOutcome(metrics.Success(5 * time.Millisecond))
	collector.RecordOutcome(metrics.Failure(metrics.ErrorKindTimeout))

	var buf lockedBuffer
	reporter := NewProgressReporter(collector, 10*time.Millisecond, &buf)
	reporter.Start()
	time.Sleep(60 * time.Millisecond)
	reporter.Stop()

	out := buf.String()
	if !strings.Contains(out, "Step 1/5") {
		t.Fatalf("progress missing step info:\n%q", out)
	}
	if !strings.Contains(out, "Target TPS: 2") {
		t.Fatalf("progress missing target rate:\n%q", out)
	}
	if !strings.Contains(out, "OK: 1") || !strings.Contains(out, "Failed: 1") {
		t.Fatalf("progress missing counters:\n%q", out)
	}
}

func TestProgressReporterStopIsIdempotent(t *testing.T) {
	reporter := NewProgressReporter(metrics.NewCollector(), 10*time.Millisecond, nil)
	reporter.Start()
	reporter.Start() // second start is a no-op
	reporter.Stop()
	reporter.Stop() // second stop must not panic or block
}
