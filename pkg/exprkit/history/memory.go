package history

import "sync"

// MemoryStore is an in-memory history store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record // oldest first
	index   map[string]int
	closed  bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	if rec.ID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if i, ok := m.index[rec.ID]; ok {
		m.records[i] = rec
		return nil
	}
	m.index[rec.ID] = len(m.records)
	m.records = append(m.records, rec)
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	i, ok := m.index[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return m.records[i], nil
}

// List implements Store.
func (m *MemoryStore) List(limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	n := len(m.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Record, 0, n)
	for i := len(m.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.records = nil
	m.index = make(map[string]int)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	m.index = nil
	return nil
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}
