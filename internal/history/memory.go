package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store in memory. Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
}

// NewMemoryStore creates a store that keeps at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity}
}

func (m *MemoryStore) Record(ctx context.Context, o *pipeline.Outcome) error {
	entry, err := NewEntry(o)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = trim(append(m.entries, entry), m.capacity)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return newestFirst(m.entries, limit), nil
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			clone := e
			return &clone, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}
