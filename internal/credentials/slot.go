package credentials

import (
	"context"
	"sync"
)

// Slot is one backing store for a StoredSession.
//
// Load returns nil, nil when the slot is empty. Delete on an empty slot is
// not an error.
type Slot interface {
	Name() string
	Load(ctx context.Context) (*StoredSession, error)
	Save(ctx context.Context, s StoredSession) error
	Delete(ctx context.Context) error
}

// MemorySlot keeps a session for the lifetime of the process. It backs the
// session-scoped half of the Store.
type MemorySlot struct {
	mu      sync.RWMutex
	session *StoredSession
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Name() string { return "memory" }

func (m *MemorySlot) Load(ctx context.Context) (*StoredSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *MemorySlot) Save(ctx context.Context, s StoredSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.session = &s
	m.mu.Unlock()
	return nil
}

func (m *MemorySlot) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	return nil
}

var _ Slot = (*MemorySlot)(nil)
