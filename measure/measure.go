package measure

import (
	"os"
	"sync"
)

// Enabled gates all measurement collection. Set HBS_MEASURE=1 to activate.
var Enabled = os.Getenv("HBS_MEASURE") == "1"

// Counters accumulates named byte/operation counts.
type Counters struct {
	mu sync.Mutex
	m  map[string]uint64
}

// Global is the process-wide counter set used by the signing pipeline.
var Global = &Counters{m: make(map[string]uint64)}

// Add increments the named counter by v. Negative deltas are ignored.
func (c *Counters) Add(name string, v int64) {
	if v < 0 {
		return
	}
	c.mu.Lock()
	c.m[name] += uint64(v)
	c.mu.Unlock()
}

// SnapshotAndReset returns the current measurement map and clears it.
func (c *Counters) SnapshotAndReset() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.m
	c.m = make(map[string]uint64)
	return out
}
