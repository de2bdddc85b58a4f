package testutil

import (
	"encoding/json"

	"github.com/hupe1980/researchmesh/core"
)

// SessionBuilder provides a fluent helper for constructing sessions in tests.
type SessionBuilder struct {
	projectID string
	name      string
	roster    []string
	status    core.SessionStatus
	results   map[string]json.RawMessage
}

// NewSessionBuilder creates a builder with default project "proj-test" and
// name "test session".
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{projectID: "proj-test", name: "test session"}
}

// Project sets the owning project id (chainable).
func (b *SessionBuilder) Project(id string) *SessionBuilder { b.projectID = id; return b }

// Name sets the session display name (chainable).
func (b *SessionBuilder) Name(n string) *SessionBuilder { b.name = n; return b }

// Roster sets the enabled agent names (chainable).
func (b *SessionBuilder) Roster(agents ...string) *SessionBuilder { b.roster = agents; return b }

// Status forces a non-initial status after construction (chainable).
func (b *SessionBuilder) Status(s core.SessionStatus) *SessionBuilder { b.status = s; return b }

// Result seeds a stored task result (chainable).
func (b *SessionBuilder) Result(taskID string, raw json.RawMessage) *SessionBuilder {
	if b.results == nil {
		b.results = map[string]json.RawMessage{}
	}
	b.results[taskID] = raw
	return b
}

// Build constructs the session. Status transitions are applied through
// SetStatus so invalid combinations panic early in the test.
func (b *SessionBuilder) Build() *core.Session {
	sess := core.NewSession(b.projectID, b.name, b.roster)
	for id, raw := range b.results {
		sess.StoreResult(id, raw)
	}
	if b.status != "" && b.status != core.SessionActive {
		if err := sess.SetStatus(b.status); err != nil {
			panic(err)
		}
	}
	return sess
}
