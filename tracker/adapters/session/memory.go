package session

import (
	"context"
	"sync"
	"time"

	"deadline-tracker/tracker/core"
)

type memoryEntry struct {
	session   core.Session
	expiresAt time.Time // zero: never
}

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sess core.Session, ttl time.Duration) error {
	e := memoryEntry{session: sess}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sess.Token] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (core.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return core.Session{}, core.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return core.Session{}, core.ErrSessionNotFound
	}
	return e.session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[token]; !ok {
		return core.ErrSessionNotFound
	}
	delete(s.entries, token)
	return nil
}

var _ core.SessionStore = (*MemoryStore)(nil)
