// Package researchmesh provides a high-level façade over the orchestrator and
// service abstractions (sessions, cells, memory & logging) enabling rapid
// construction of multi-agent research workflows. Most applications interact
// with this package by:
//  1. Creating a ResearchMesh via New() (optionally overriding agent cards,
//     stores, model backend and event sink)
//  2. Creating a session with an agent roster (CreateSession)
//  3. Calling Initialize once, then RunWorkflow per research prompt
//
// The façade delegates planning and execution to orchestrator.Orchestrator
// while keeping setup ergonomics concise. All defaults are safe for local
// development: unset stores are in-memory, unreachable agents degrade to
// deterministic stub responses, and events go nowhere unless a sink is
// supplied.
package researchmesh

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hupe1980/researchmesh/a2a"
	"github.com/hupe1980/researchmesh/cell"
	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/event"
	"github.com/hupe1980/researchmesh/logging"
	"github.com/hupe1980/researchmesh/memory"
	"github.com/hupe1980/researchmesh/model"
	"github.com/hupe1980/researchmesh/orchestrator"
	"github.com/hupe1980/researchmesh/registry"
	"github.com/hupe1980/researchmesh/session"
)

// Options configures the ResearchMesh instance.
type Options struct {
	// Cards declares the available agents; DefaultCards() if empty.
	Cards []a2a.Card

	// Stores (defaults to in-memory implementations if not provided)
	SessionStore core.SessionStore
	CellStore    core.CellStore
	MemoryStore  core.MemoryStore

	// EventSink receives workflow lifecycle events (defaults to NoOp if nil)
	EventSink core.EventSink

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Model backs local agent invocation when a card declares no endpoint.
	Model model.Model

	// Domain tags planned stage inputs (cs, biology, physics, general).
	Domain string

	// CallTimeout bounds a single skill invocation.
	CallTimeout time.Duration

	// HTTPClient used for remote agent invocation.
	HTTPClient *http.Client
}

// ResearchMesh is the high-level façade aggregating the registry, the
// orchestrator and the backing services.
type ResearchMesh struct {
	opts     Options
	registry *registry.Registry
	orch     *orchestrator.Orchestrator
}

// New creates a new ResearchMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*ResearchMesh, error) {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		CellStore:    cell.NewInMemoryStore(),
		MemoryStore:  memory.NewInMemoryStore(),
		EventSink:    event.NoOpSink{},
		Logger:       logging.NoOpLogger{},
		Domain:       "general",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	cards := opts.Cards
	if len(cards) == 0 {
		cards = a2a.DefaultCards()
	}

	reg, err := registry.New(cards...)
	if err != nil {
		return nil, err
	}

	orch, err := orchestrator.New(reg, func(o *orchestrator.Options) {
		o.SessionStore = opts.SessionStore
		o.CellStore = opts.CellStore
		o.MemoryStore = opts.MemoryStore
		o.EventSink = opts.EventSink
		o.Logger = opts.Logger
		o.Model = opts.Model
		o.Domain = opts.Domain
		o.CallTimeout = opts.CallTimeout
		o.HTTPClient = opts.HTTPClient
	})
	if err != nil {
		return nil, err
	}

	return &ResearchMesh{opts: opts, registry: reg, orch: orch}, nil
}

// Registry exposes the agent registry for card and skill lookups.
func (m *ResearchMesh) Registry() *registry.Registry { return m.registry }

// Initialize probes every agent's endpoint concurrently. Unreachable agents
// degrade to stub mode; the only returned error is context cancellation.
func (m *ResearchMesh) Initialize(ctx context.Context) error {
	return m.orch.Initialize(ctx)
}

// CreateSession creates and persists a new active session with the given
// agent roster and returns it.
func (m *ResearchMesh) CreateSession(projectID, name string, roster []string) (*core.Session, error) {
	sess := core.NewSession(projectID, name, roster)
	if err := m.opts.SessionStore.Create(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns a snapshot of the identified session.
func (m *ResearchMesh) GetSession(sessionID string) (*core.Session, error) {
	return m.opts.SessionStore.Get(sessionID)
}

// RunWorkflow plans and executes the research pipeline for the session using
// the prompt as the initial research question.
func (m *ResearchMesh) RunWorkflow(ctx context.Context, sessionID, prompt string) (*orchestrator.WorkflowResult, error) {
	return m.orch.ExecuteWorkflow(ctx, sessionID, prompt)
}

// RunSkill invokes a single agent skill inside a session, outside the planned
// pipeline.
func (m *ResearchMesh) RunSkill(ctx context.Context, sessionID, agentName, skillID string, input map[string]any) (json.RawMessage, error) {
	return m.orch.RunSkill(ctx, sessionID, agentName, skillID, input)
}

// ArchiveSession moves the session to the archived terminal status.
func (m *ResearchMesh) ArchiveSession(sessionID string) error {
	sess, err := m.opts.SessionStore.Get(sessionID)
	if err != nil {
		return err
	}
	if err := sess.SetStatus(core.SessionArchived); err != nil {
		return err
	}
	return m.opts.SessionStore.Save(sess)
}

// Cells lists the content cells produced for a session in order.
func (m *ResearchMesh) Cells(sessionID string) ([]core.Cell, error) {
	return m.opts.CellStore.List(sessionID)
}

// Close releases all agent clients.
func (m *ResearchMesh) Close() error {
	return m.orch.Close()
}
