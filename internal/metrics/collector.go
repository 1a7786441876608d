package metrics

import (
	"sync"
	"time"
)

// Collector tracks live counters while a test is running, in a thread-safe
// manner. It only feeds the progress line; the authoritative per-step
// statistics come from ReduceStep over the drained outcome collection.
type Collector struct {
	mu        sync.Mutex
	successes int64
	failures  int64
	step      int
	steps     int
	targetTPS int
	start     time.Time
}

// Progress is a point-in-time snapshot of the collector.
type Progress struct {
	Step      int
	Steps     int
	TargetTPS int
	Successes int64
	Failures  int64
	Total     int64
	Elapsed   time.Duration
	SendRate  float64
}

func NewCollector() *Collector {
	return &Collector{start: time.Now()}
}

// Start marks the moment traffic actually begins so rate figures do not
// include setup time.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Now()
}

// BeginStep records which ramp step is currently under test.
func (c *Collector) BeginStep(step, steps, targetTPS int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
	c.steps = steps
	c.targetTPS = targetTPS
}

// RecordOutcome counts one finished submission.
func (c *Collector) RecordOutcome(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o.Failed {
		c.failures++
	} else {
		c.successes++
	}
}

// Snapshot returns the current counters.
func (c *Collector) Snapshot() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Progress{
		Step:      c.step,
		Steps:     c.steps,
		TargetTPS: c.targetTPS,
		Successes: c.successes,
		Failures:  c.failures,
		Total:     c.successes + c.failures,
		Elapsed:   time.Since(c.start),
	}
	if p.Elapsed > 0 && p.Total > 0 {
		p.SendRate = float64(p.Total) / p.Elapsed.Seconds()
	}
	return p
}
