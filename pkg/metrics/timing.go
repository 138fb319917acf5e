// Package metrics times the blocking filesystem work of a vcd session and
// counts read failures. The numbers are written to the debug log when the
// session ends. Set VCD_METRICS=0 to switch collection off.
package metrics

import (
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("VCD_METRICS") != "0")
}

// Enabled reports whether measurements are being kept.
func Enabled() bool { return enabled.Load() }

// SetEnabled switches collection on or off.
func SetEnabled(on bool) { enabled.Store(on) }

// Timing accumulates durations of one kind of operation.
type Timing struct {
	name string

	mu    sync.Mutex
	count int64
	total time.Duration
	worst time.Duration
}

func newTiming(name string) *Timing {
	return &Timing{name: name}
}

// Record adds one measurement.
func (t *Timing) Record(d time.Duration) {
	if !Enabled() {
		return
	}
	t.mu.Lock()
	t.count++
	t.total += d
	t.worst = max(t.worst, d)
	t.mu.Unlock()
}

// Name returns the key the timing is logged under.
func (t *Timing) Name() string { return t.name }

// Count returns how many measurements were recorded.
func (t *Timing) Count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Summary returns the totals so far.
func (t *Timing) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Summary{
		Name:    t.name,
		Count:   t.count,
		TotalMs: ms(t.total),
		MaxMs:   ms(t.worst),
	}
	if t.count > 0 {
		s.AvgMs = ms(t.total / time.Duration(t.count))
	}
	return s
}

// Reset forgets every measurement.
func (t *Timing) Reset() {
	t.mu.Lock()
	t.count, t.total, t.worst = 0, 0, 0
	t.mu.Unlock()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Summary is a point-in-time view of a Timing.
type Summary struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
}

// Timer starts measuring for t. Call the returned func when the work is done.
//
//	defer metrics.Timer(metrics.Flatten)()
func Timer(t *Timing) func() {
	if t == nil || !Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() { t.Record(time.Since(start)) }
}

// Counter counts events.
type Counter struct {
	name string
	n    atomic.Int64
}

// Inc counts one event.
func (c *Counter) Inc() {
	if Enabled() {
		c.n.Add(1)
	}
}

// Name returns the key the counter is logged under.
func (c *Counter) Name() string { return c.name }

// Value returns the number of events so far.
func (c *Counter) Value() int64 { return c.n.Load() }

// Reset sets the counter back to zero.
func (c *Counter) Reset() { c.n.Store(0) }

var (
	DirRead     = newTiming("dir_read")
	PathResolve = newTiming("path_resolve")
	Flatten     = newTiming("flatten")

	DirReadFailures = &Counter{name: "dir_read_failures"}
)

var (
	timings  = []*Timing{DirRead, PathResolve, Flatten}
	counters = []*Counter{DirReadFailures}
)

// AllCounters returns every counter in log order.
func AllCounters() []*Counter { return counters }

// Summaries returns the timings that recorded anything.
func Summaries() []Summary {
	var out []Summary
	for _, t := range timings {
		if t.Count() > 0 {
			out = append(out, t.Summary())
		}
	}
	return out
}

// ResetAll zeroes every timing and counter.
func ResetAll() {
	for _, t := range timings {
		t.Reset()
	}
	for _, c := range counters {
		c.Reset()
	}
}
