package session

import (
	"fmt"
	"sync"

	"github.com/hupe1980/researchmesh/core"
)

// InMemoryStore is a volatile SessionStore implementation storing sessions in
// a process local map. It is safe for concurrent access. Each returned
// session is cloned to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Create stores a new session. Creating an id twice is an error.
func (s *InMemoryStore) Create(sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return fmt.Errorf("session %s already exists", sess.ID)
	}
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get returns a clone of the stored session or core.ErrSessionNotFound.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, core.ErrSessionNotFound)
	}
	return sess.Clone(), nil
}

// Save stores a clone of the provided session snapshot, overwriting the
// previous state.
func (s *InMemoryStore) Save(sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}
