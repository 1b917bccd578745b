package credentials

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Store holds at most one session across a durable and a session-scoped
// slot. All operations are serialized so a concurrent Read never observes
// both slots populated.
type Store struct {
	mu      sync.Mutex
	durable Slot
	session Slot
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for audit lines.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store over the given slots.
func NewStore(durable, session Slot, opts ...StoreOption) *Store {
	s := &Store{
		durable: durable,
		session: session,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore creates a Store whose slots both live in memory. It is
// meant for tests and for embedding where nothing should touch disk.
func NewMemoryStore() *Store {
	return NewStore(NewMemorySlot(), NewMemorySlot())
}

// Durable returns the durable slot.
func (s *Store) Durable() Slot { return s.durable }

// Write saves pair into the durable slot when persistent is true, otherwise
// into the session slot. The other slot is cleared in both cases.
func (s *Store) Write(ctx context.Context, pair TokenPair, persistent bool) error {
	if err := pair.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, other := s.session, s.durable
	if persistent {
		target, other = s.durable, s.session
	}

	if err := target.Save(ctx, StoredSession{TokenPair: pair, Persistent: persistent}); err != nil {
		s.logger.Warn("SECURITY_AUDIT: session write failed",
			"event", "session_store_failed",
			"slot", target.Name(),
			"error", err.Error(),
		)
		return err
	}
	if err := other.Delete(ctx); err != nil {
		return err
	}

	s.logger.Info("SECURITY_AUDIT: session stored",
		"event", "session_stored",
		"slot", target.Name(),
		"persistent", persistent,
		"has_refresh_token", pair.Refresh != "",
	)
	return nil
}

// Read returns the stored session, checking the durable slot first. It
// returns nil, nil when neither slot holds a session.
func (s *Store) Read(ctx context.Context) (*StoredSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range []Slot{s.durable, s.session} {
		stored, err := slot.Load(ctx)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			return stored, nil
		}
	}
	return nil, nil
}

// Clear empties both slots. It is idempotent. Both slots are attempted even
// if the first one fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := errors.Join(
		s.durable.Delete(ctx),
		s.session.Delete(ctx),
	)
	if err != nil {
		return err
	}

	s.logger.Info("SECURITY_AUDIT: session cleared",
		"event", "session_cleared",
	)
	return nil
}
