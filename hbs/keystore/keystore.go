package keystore

import (
	"errors"
	"sync"
)

// ErrRollback reports an Advance below the recorded index. The index
// only moves forward; anything else risks leaf reuse.
var ErrRollback = errors.New("keystore: leaf index rollback refused")

// Memory keeps the leaf index in process memory. It enforces
// monotonicity but provides no durability; use it for tests and for
// keys whose state lives elsewhere.
type Memory struct {
	mu   sync.Mutex
	next uint32
	set  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Advance records next as the lowest unused leaf index.
func (m *Memory) Advance(next uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set && next < m.next {
		return ErrRollback
	}
	m.next = next
	m.set = true
	return nil
}

// Index returns the recorded index and whether one was ever recorded.
func (m *Memory) Index() (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next, m.set
}
