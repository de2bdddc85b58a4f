package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/researchmesh/core"
)

// ErrNotFound is returned when a memory record does not exist.
var ErrNotFound = fmt.Errorf("memory not found")

// InMemoryStore is a naive process-local MemoryStore keeping records
// append-only per session.
//
// Concurrency: protected by RWMutex.
// Search: linear scan with substring matching (case sensitive). Suitable for
// tests / demos; swap for a vector or keyword index for production retrieval.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]core.MemoryRecord // sessionID -> ordered records
}

// NewInMemoryStore creates a new in-memory memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]core.MemoryRecord)}
}

// Store appends a record to its session's memory.
func (m *InMemoryStore) Store(rec core.MemoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.SessionID] = append(m.records[rec.SessionID], rec)
	return nil
}

// Search performs a simple substring match over stored records in insertion
// order, up to the provided limit. An empty query matches everything.
func (m *InMemoryStore) Search(sessionID, query string, limit int) ([]core.MemoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]core.MemoryRecord, 0, limit)
	for _, rec := range m.records[sessionID] {
		if limit > 0 && len(results) >= limit {
			break
		}
		if query == "" || strings.Contains(rec.Content, query) {
			results = append(results, rec)
		}
	}
	return results, nil
}

// List returns a copy of all records for the session in insertion order.
func (m *InMemoryStore) List(sessionID string) ([]core.MemoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.records[sessionID]
	out := make([]core.MemoryRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// Delete removes a stored record by id.
func (m *InMemoryStore) Delete(sessionID, memoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs, ok := m.records[sessionID]
	if !ok {
		return ErrNotFound
	}
	for i, rec := range recs {
		if rec.ID == memoryID {
			m.records[sessionID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
