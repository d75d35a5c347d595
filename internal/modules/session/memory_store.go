// README: In-process session store for the demo binary and unit tests.
package session

import (
	"context"
	"sync"
	"time"

	"flightdesk/internal/types"
)

// MemoryStore keeps encoded documents, not live structs, so callers never share
// slices with the store.
type MemoryStore struct {
	mu    sync.Mutex
	items map[types.SessionID]map[string]string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[types.SessionID]map[string]string), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id types.SessionID) (*Session, error) {
	m.mu.Lock()
	fields, ok := m.items[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeDocuments(id, fields)
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[s.ID]
	if s.Version == 0 && exists {
		return ErrConflict
	}
	if s.Version != 0 {
		if !exists || current[fieldVersion] != formatVersion(s.Version) {
			return ErrConflict
		}
	}

	next := *s
	next.Version = s.Version + 1
	next.UpdatedAt = m.now()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}
	fields, err := encodeDocuments(&next)
	if err != nil {
		return err
	}
	m.items[s.ID] = fields
	s.Version, s.CreatedAt, s.UpdatedAt = next.Version, next.CreatedAt, next.UpdatedAt
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id types.SessionID) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}
