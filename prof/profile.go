package prof

import (
	"sync"
	"time"
)

// Entry is a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start under the given label. Use it
// with defer around keygen, sign and verify hot paths.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Totals folds the current entries into per-label sums without
// clearing them.
func Totals() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	sums := make(map[string]time.Duration, len(record))
	for _, e := range record {
		sums[e.Label] += e.Dur
	}
	return sums
}
