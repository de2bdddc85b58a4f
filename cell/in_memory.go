package cell

import (
	"sync"

	"github.com/hupe1980/researchmesh/core"
)

// InMemoryStore is a trivial in-process CellStore useful for tests, examples
// and single-process prototypes. Cells are kept per session in append order,
// guarded by an RWMutex. Returned slices are copies.
//
// This implementation is intentionally minimal; it does not enforce retention
// limits or quotas. For production, prefer a durable implementation that can
// survive process restarts.
type InMemoryStore struct {
	mu    sync.RWMutex
	cells map[string][]core.Cell // sessionID -> ordered cells
}

// NewInMemoryStore returns an empty in-memory cell store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cells: make(map[string][]core.Cell)}
}

// Append stores the cell at the end of its session's list, assigning its
// position. The stored cell is returned.
func (s *InMemoryStore) Append(c core.Cell) (core.Cell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Position = len(s.cells[c.SessionID])
	s.cells[c.SessionID] = append(s.cells[c.SessionID], c)
	return c, nil
}

// List returns the session's cells in append order. The slice is a snapshot
// safe for caller mutation.
func (s *InMemoryStore) List(sessionID string) ([]core.Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells := s.cells[sessionID]
	out := make([]core.Cell, len(cells))
	copy(out, cells)
	return out, nil
}

// Get returns the cell with the given id or ErrNotFound.
func (s *InMemoryStore) Get(sessionID, cellID string) (core.Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cells[sessionID] {
		if c.ID == cellID {
			return c, nil
		}
	}
	return core.Cell{}, ErrNotFound
}
