package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMemoryCapacity bounds how many runs a MemoryStore keeps.
const DefaultMemoryCapacity = 100

// MemoryStore keeps the most recent runs in memory. It is safe for
// concurrent use. Once full, the oldest run is dropped on each Record.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     []Run
	capacity int
}

// NewMemoryStore creates a store holding at most capacity runs.
// A non-positive capacity uses DefaultMemoryCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		runs:     make([]Run, 0, capacity),
		capacity: capacity,
	}
}

// Record appends a run, evicting the oldest when the store is full.
func (m *MemoryStore) Record(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.runs) == m.capacity {
		copy(m.runs, m.runs[1:])
		m.runs = m.runs[:len(m.runs)-1]
	}
	m.runs = append(m.runs, run)
	return nil
}

// Get returns the run with the given ID.
func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return Run{}, ErrNotFound
}

// Recent returns up to limit runs, newest first. A non-positive limit
// returns every stored run.
func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.runs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Run, 0, n)
	for i := len(m.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// Prune drops runs that started more than olderThan ago.
func (m *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.runs[:0]
	for _, r := range m.runs {
		if !r.StartedAt.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	pruned := int64(len(m.runs) - len(kept))
	m.runs = kept
	return pruned, nil
}

// Len returns the number of stored runs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// Close is a no-op.
func (m *MemoryStore) Close() {}
