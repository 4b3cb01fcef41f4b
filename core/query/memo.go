package query

import (
	"sync"

	"github.com/asaidimu/go-lister/core/schema"
)

// Memo caches query selections per dataset version. A listing recomputes its
// view on every render; as long as neither the dataset nor the query state
// changed, the cached positions are reused.
type Memo struct {
	engine *Engine

	mu          sync.Mutex
	version     uint64
	fingerprint string
	positions   []int
	valid       bool
	hits        int
	misses      int
}

// NewMemo creates a memo that evaluates cache misses with engine.
func NewMemo(engine *Engine) *Memo {
	if engine == nil {
		engine = defaultEngine
	}
	return &Memo{engine: engine}
}

// Query returns the records selected by q from the dataset identified by
// version. Callers must bump version whenever the dataset changes.
func (m *Memo) Query(dataset []schema.Record, version uint64, q ListQuery) []schema.Record {
	positions := m.Select(dataset, version, q)
	result := make([]schema.Record, len(positions))
	for i, pos := range positions {
		result[i] = dataset[pos]
	}
	return result
}

// Select is the position-returning form of Query. The returned slice must not
// be modified.
func (m *Memo) Select(dataset []schema.Record, version uint64, q ListQuery) []int {
	fingerprint := q.Fingerprint()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.version == version && m.fingerprint == fingerprint {
		m.hits++
		return m.positions
	}
	m.misses++
	m.positions = m.engine.Select(dataset, q)
	m.version = version
	m.fingerprint = fingerprint
	m.valid = true
	return m.positions
}

// Invalidate drops the cached selection.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
	m.positions = nil
}

// Stats returns the number of cache hits and misses so far.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
