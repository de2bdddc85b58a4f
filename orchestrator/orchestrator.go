package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/researchmesh/a2a"
	"github.com/hupe1980/researchmesh/cell"
	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/event"
	"github.com/hupe1980/researchmesh/logging"
	"github.com/hupe1980/researchmesh/memory"
	"github.com/hupe1980/researchmesh/model"
	"github.com/hupe1980/researchmesh/registry"
	"github.com/hupe1980/researchmesh/session"
)

// Options configures the orchestrator.
type Options struct {
	// SessionStore persists session state; in-memory if nil.
	SessionStore core.SessionStore
	// CellStore receives derived content artifacts; in-memory if nil.
	CellStore core.CellStore
	// MemoryStore receives result records; in-memory if nil.
	MemoryStore core.MemoryStore
	// EventSink receives lifecycle events; NoOp if nil.
	EventSink core.EventSink
	// Logger for executor logging; NoOp if nil.
	Logger logging.Logger
	// Model backs local agent invocation.
	Model model.Model
	// Domain tags planned stage inputs (cs, biology, physics, general).
	Domain string
	// CallTimeout bounds one skill invocation.
	CallTimeout time.Duration
	// HTTPClient used for remote agent invocation.
	HTTPClient *http.Client
}

// Orchestrator plans and executes research workflows over a set of agents.
// Execution is bulk-synchronous: tasks whose dependencies are all completed
// run concurrently as a wave, the executor waits for the whole wave, then
// schedules the next. A failed task never aborts the run; its dependents are
// skipped and independent branches continue.
type Orchestrator struct {
	registry *registry.Registry
	planner  *Planner
	resolver *Resolver
	clients  map[string]*a2a.Client
	sessions core.SessionStore
	cells    core.CellStore
	memories core.MemoryStore
	sink     core.EventSink
	logger   logging.Logger
}

// WorkflowResult summarizes one workflow run.
type WorkflowResult struct {
	SessionID string             `json:"session_id"`
	Status    core.SessionStatus `json:"status"`
	Tasks     []*core.Task       `json:"tasks"`
	Completed []string           `json:"completed,omitempty"`
	Failed    []string           `json:"failed,omitempty"`
	Skipped   []string           `json:"skipped,omitempty"`
}

// New creates an orchestrator over the registry's agents. One client is
// constructed per registered card; call Initialize before the first run to
// probe remote agents.
func New(reg *registry.Registry, optFns ...func(o *Options)) (*Orchestrator, error) {
	opts := Options{Domain: "general"}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}
	if opts.CellStore == nil {
		opts.CellStore = cell.NewInMemoryStore()
	}
	if opts.MemoryStore == nil {
		opts.MemoryStore = memory.NewInMemoryStore()
	}
	if opts.EventSink == nil {
		opts.EventSink = event.NoOpSink{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	clients := make(map[string]*a2a.Client, len(reg.Names()))
	for _, card := range reg.Cards() {
		clients[card.Name] = a2a.NewClient(card, func(o *a2a.Options) {
			o.HTTPClient = opts.HTTPClient
			o.Model = opts.Model
			o.Logger = opts.Logger
			if opts.CallTimeout > 0 {
				o.CallTimeout = opts.CallTimeout
			}
		})
	}

	return &Orchestrator{
		registry: reg,
		planner:  NewPlanner(reg, func(o *PlannerOptions) { o.Domain = opts.Domain }),
		resolver: NewResolver(opts.Logger),
		clients:  clients,
		sessions: opts.SessionStore,
		cells:    opts.CellStore,
		memories: opts.MemoryStore,
		sink:     opts.EventSink,
		logger:   opts.Logger,
	}, nil
}

// Initialize probes every agent concurrently. Unreachable agents degrade to
// stub mode inside their clients; the only returned error is context
// cancellation.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range o.clients {
		g.Go(func() error {
			return c.Initialize(ctx)
		})
	}
	return g.Wait()
}

// Client returns the client for the named agent.
func (o *Orchestrator) Client(agentName string) (*a2a.Client, bool) {
	c, ok := o.clients[agentName]
	return c, ok
}

// ExecuteWorkflow plans and runs the research pipeline for the session. The
// session must be active or completed; a completed session is reactivated for
// the re-run. The session ends the run failed when any task failed or was
// skipped, completed otherwise.
//
// Moving the stored session to a terminal status (failed, archived) while a
// run is in flight aborts it: the current wave drains, no further wave is
// scheduled, and the externally set status is preserved.
func (o *Orchestrator) ExecuteWorkflow(ctx context.Context, sessionID, prompt string) (*WorkflowResult, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.EnsureRunnable(); err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if sess.CurrentStatus() == core.SessionCompleted {
		if err := sess.SetStatus(core.SessionActive); err != nil {
			return nil, err
		}
	}
	sess.SetInitialPrompt(prompt)
	if err := o.sessions.Save(sess); err != nil {
		return nil, err
	}

	start := time.Now()
	o.sink.Emit(core.NewEvent(core.EventWorkflowStarted, sessionID))

	tasks := o.planner.Plan(sessionID, prompt, sess.RosterCopy())
	o.logger.Info("Workflow planned", "session_id", sessionID, "tasks", len(tasks))

	if err := o.executeTasks(ctx, sess, tasks); err != nil {
		// Run abort: scheduling itself broke, not an individual skill call.
		// When the abort is an externally forced terminal status, that status
		// is authoritative and must not be overwritten with failed.
		if !errors.Is(err, core.ErrSessionTerminal) {
			_ = sess.SetStatus(core.SessionFailed)
			_ = o.sessions.Save(sess)
		}
		o.sink.Emit(core.NewWorkflowFailedEvent(sessionID, err))
		o.logger.Error("Workflow aborted", "session_id", sessionID, "error", err)
		return nil, err
	}

	res := &WorkflowResult{SessionID: sessionID, Tasks: tasks}
	for _, t := range tasks {
		switch t.Status {
		case core.TaskCompleted:
			res.Completed = append(res.Completed, t.ID)
		case core.TaskFailed:
			res.Failed = append(res.Failed, t.ID)
		case core.TaskSkipped:
			res.Skipped = append(res.Skipped, t.ID)
		}
	}

	final := core.SessionCompleted
	if len(res.Failed) > 0 || len(res.Skipped) > 0 {
		final = core.SessionFailed
	}
	// Re-validate against the store before writing the final status: an
	// actor may have archived or failed the session after the last wave
	// settled, and that takes precedence over the run's outcome.
	stored, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := stored.EnsureRunnable(); err != nil {
		o.sink.Emit(core.NewWorkflowFailedEvent(sessionID, err))
		o.logger.Error("Workflow result discarded, session terminal", "session_id", sessionID, "error", err)
		return nil, err
	}
	if err := sess.SetStatus(final); err != nil {
		return nil, err
	}
	sess.SetMetadata("tasks_executed", fmt.Sprintf("%d", len(tasks)))
	sess.SetMetadata("tasks_completed", fmt.Sprintf("%d", len(res.Completed)))
	sess.SetMetadata("tasks_failed", fmt.Sprintf("%d", len(res.Failed)))
	sess.SetMetadata("tasks_skipped", fmt.Sprintf("%d", len(res.Skipped)))
	if err := o.sessions.Save(sess); err != nil {
		return nil, err
	}
	res.Status = final

	if final == core.SessionCompleted {
		o.sink.Emit(core.NewEvent(core.EventWorkflowCompleted, sessionID))
	} else {
		o.sink.Emit(core.NewWorkflowFailedEvent(sessionID,
			fmt.Errorf("%d failed, %d skipped of %d tasks", len(res.Failed), len(res.Skipped), len(tasks))))
	}
	o.logger.Info("Workflow finished", "session_id", sessionID, "status", string(final),
		"completed", len(res.Completed), "failed", len(res.Failed), "skipped", len(res.Skipped),
		"duration", time.Since(start).String())
	return res, nil
}

// outcome carries one task's call result back from its worker goroutine.
type outcome struct {
	result json.RawMessage
	err    error
}

// executeTasks drives the wave loop to quiescence. A returned error means the
// run itself could not proceed (malformed plan, dependency cycle, unresolvable
// reference, context cancellation); individual skill failures are recorded on
// their tasks instead.
func (o *Orchestrator) executeTasks(ctx context.Context, sess *core.Session, tasks []*core.Task) error {
	byID := make(map[string]*core.Task, len(tasks))
	for _, t := range tasks {
		if _, dup := byID[t.ID]; dup {
			return &PlanError{TaskID: t.ID, Reason: "duplicate task id"}
		}
		byID[t.ID] = t
	}
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; !ok {
				return &PlanError{TaskID: t.ID, Reason: fmt.Sprintf("depends on unknown task %q", dep)}
			}
		}
	}

	results := make(map[string]json.RawMessage, len(tasks))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// The run works on a session snapshot; another actor may have moved
		// the stored session to a terminal status to abort the run. The
		// in-flight wave drains, but no further wave is scheduled.
		stored, err := o.sessions.Get(sess.ID)
		if err != nil {
			return err
		}
		if err := stored.EnsureRunnable(); err != nil {
			o.logger.Warn("Session moved to terminal status mid-run, stopping",
				"session_id", sess.ID, "status", string(stored.CurrentStatus()))
			return err
		}
		o.markSkipped(sess.ID, byID, tasks)

		var pending, ready []*core.Task
		for _, t := range tasks {
			if t.Status != core.TaskPending {
				continue
			}
			pending = append(pending, t)
			if depsCompleted(t, byID) {
				ready = append(ready, t)
			}
		}
		if len(pending) == 0 {
			return nil
		}
		if len(ready) == 0 {
			ids := make([]string, 0, len(pending))
			for _, t := range pending {
				ids = append(ids, t.ID)
			}
			return &DeadlockError{Pending: ids}
		}

		// Resolution happens on the scheduling thread before any dispatch so
		// a programming error aborts the run before side effects.
		inputs := make([]map[string]any, len(ready))
		for i, t := range ready {
			in, err := o.resolver.Resolve(t.ID, t.Params, results)
			if err != nil {
				return err
			}
			if verr := o.registry.ValidateInput(t.AgentName, t.SkillID, in); verr != nil {
				o.logger.Warn("Skill input failed schema validation, dispatching anyway",
					"task_id", t.ID, "agent", t.AgentName, "skill", t.SkillID, "error", verr)
			}
			inputs[i] = in
		}

		outcomes := make([]outcome, len(ready))
		var wg sync.WaitGroup
		for i, t := range ready {
			t.Status = core.TaskRunning
			t.StartedAt = time.Now().UTC()
			o.sink.Emit(core.NewAgentEvent(core.EventAgentStarted, sess.ID, t))

			wg.Add(1)
			go func() {
				defer wg.Done()
				client, ok := o.clients[t.AgentName]
				if !ok {
					outcomes[i] = outcome{err: fmt.Errorf("no client for agent %q", t.AgentName)}
					return
				}
				raw, err := client.CallSkill(ctx, t.SkillID, inputs[i])
				outcomes[i] = outcome{result: raw, err: err}
			}()
		}
		wg.Wait()

		for i, t := range ready {
			t.CompletedAt = time.Now().UTC()
			if out := outcomes[i]; out.err != nil {
				t.Status = core.TaskFailed
				t.Error = out.err.Error()
				o.sink.Emit(core.NewAgentErrorEvent(sess.ID, t, out.err))
				o.logger.Error("Task failed", "task_id", t.ID, "agent", t.AgentName,
					"skill", t.SkillID, "error", out.err)
			} else {
				t.Status = core.TaskCompleted
				t.Result = out.result
				results[t.ID] = out.result
				sess.StoreResult(t.ID, out.result)
				o.sink.Emit(core.NewAgentEvent(core.EventAgentCompleted, sess.ID, t))
				o.recordArtifacts(sess, t.AgentName, t.SkillID, t.ID, out.result)
			}
		}
	}
}

// markSkipped cascades upstream failure: any pending task with a failed or
// skipped dependency is marked skipped, to a fixpoint so chains settle in one
// call.
func (o *Orchestrator) markSkipped(sessionID string, byID map[string]*core.Task, tasks []*core.Task) {
	for changed := true; changed; {
		changed = false
		for _, t := range tasks {
			if t.Status != core.TaskPending {
				continue
			}
			for _, dep := range t.DependsOn {
				d := byID[dep]
				if d.Status != core.TaskFailed && d.Status != core.TaskSkipped {
					continue
				}
				t.Status = core.TaskSkipped
				t.Error = fmt.Sprintf("skipped: dependency %s %s", d.ID, d.Status)
				o.logger.Info("Task skipped", "session_id", sessionID, "task_id", t.ID, "dependency", d.ID)
				changed = true
				break
			}
		}
	}
}

func depsCompleted(t *core.Task, byID map[string]*core.Task) bool {
	for _, dep := range t.DependsOn {
		if byID[dep].Status != core.TaskCompleted {
			return false
		}
	}
	return true
}

// recordArtifacts derives a content cell and a memory record from a completed
// skill call. Artifact failures are logged, never propagated; content capture
// is best effort and must not fail the task retroactively.
func (o *Orchestrator) recordArtifacts(sess *core.Session, agentName, skillID, taskID string, result json.RawMessage) {
	var (
		content  string
		cellType = core.CellMarkdown
	)
	switch {
	case gjson.GetBytes(result, "raw_output").Exists():
		content = gjson.GetBytes(result, "raw_output").String()
	case gjson.GetBytes(result, "code").Exists():
		content = gjson.GetBytes(result, "code").String()
		cellType = core.CellCode
	default:
		pretty, err := json.MarshalIndent(json.RawMessage(result), "", "  ")
		if err != nil {
			o.logger.Warn("Result not renderable as cell content", "task_id", taskID, "error", err)
			return
		}
		content = string(pretty)
	}

	c, err := o.cells.Append(core.NewCell(sess.ID, cellType, content, agentName, skillID))
	if err != nil {
		o.logger.Warn("Cell append failed", "session_id", sess.ID, "task_id", taskID, "error", err)
	} else {
		o.sink.Emit(core.NewCellCreatedEvent(sess.ID, c))
	}

	rec := core.NewMemoryRecord(sess.ID, core.MemoryKindResult, string(result), map[string]any{
		"agent_name": agentName,
		"skill_id":   skillID,
		"task_id":    taskID,
	})
	if err := o.memories.Store(rec); err != nil {
		o.logger.Warn("Memory store failed", "session_id", sess.ID, "task_id", taskID, "error", err)
	}
}

// RunSkill invokes a single agent skill inside a session, outside the planned
// pipeline. The agent must be on the session roster. The result is stored and
// the same artifacts and events are produced as for a planned task.
func (o *Orchestrator) RunSkill(ctx context.Context, sessionID, agentName, skillID string, input map[string]any) (json.RawMessage, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.EnsureRunnable(); err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if !sess.HasAgent(agentName) {
		return nil, fmt.Errorf("agent %q not on session %s roster", agentName, sessionID)
	}
	client, ok := o.clients[agentName]
	if !ok {
		return nil, fmt.Errorf("no client for agent %q", agentName)
	}
	if verr := o.registry.ValidateInput(agentName, skillID, input); verr != nil {
		o.logger.Warn("Skill input failed schema validation, dispatching anyway",
			"agent", agentName, "skill", skillID, "error", verr)
	}

	taskID := fmt.Sprintf("adhoc_%s_%s", agentName, skillID)
	task := core.NewTask(taskID, agentName, skillID, nil)
	o.sink.Emit(core.NewAgentEvent(core.EventAgentStarted, sessionID, task))

	result, err := client.CallSkill(ctx, skillID, input)
	if err != nil {
		o.sink.Emit(core.NewAgentErrorEvent(sessionID, task, err))
		return nil, err
	}
	task.Status = core.TaskCompleted
	task.Result = result
	o.sink.Emit(core.NewAgentEvent(core.EventAgentCompleted, sessionID, task))

	sess.StoreResult(taskID, result)
	o.recordArtifacts(sess, agentName, skillID, taskID, result)
	if err := o.sessions.Save(sess); err != nil {
		return nil, err
	}
	return result, nil
}

// Close releases all agent clients.
func (o *Orchestrator) Close() error {
	var errs []error
	for _, c := range o.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
