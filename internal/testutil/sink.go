package testutil

import (
	"sync"

	"github.com/hupe1980/researchmesh/core"
)

// RecordingSink captures emitted events for assertion. Safe for concurrent
// use; the executor emits from its scheduling thread but tests may read while
// a run is in flight.
type RecordingSink struct {
	mu     sync.Mutex
	events []core.Event
}

// Emit records the event.
func (s *RecordingSink) Emit(ev core.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a snapshot of everything emitted so far, in order.
func (s *RecordingSink) Events() []core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Types returns the emitted event types in order.
func (s *RecordingSink) Types() []core.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.EventType, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

// OfType returns the emitted events matching the given type, in order.
func (s *RecordingSink) OfType(t core.EventType) []core.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Event
	for _, ev := range s.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
