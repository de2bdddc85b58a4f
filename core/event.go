package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a workflow lifecycle event.
type EventType string

const (
	// EventWorkflowStarted is emitted once when a workflow run begins.
	EventWorkflowStarted EventType = "workflow_started"
	// EventAgentStarted is emitted when a task is dispatched to an agent.
	EventAgentStarted EventType = "agent_started"
	// EventAgentCompleted is emitted when a task's skill call succeeds.
	EventAgentCompleted EventType = "agent_completed"
	// EventAgentError is emitted when a task's skill call fails.
	EventAgentError EventType = "agent_error"
	// EventCellCreated is emitted when a derived content artifact is produced.
	EventCellCreated EventType = "cell_created"
	// EventWorkflowCompleted is emitted when a run ends with every task completed.
	EventWorkflowCompleted EventType = "workflow_completed"
	// EventWorkflowFailed is emitted when a run ends with failed or skipped
	// tasks, or aborts.
	EventWorkflowFailed EventType = "workflow_failed"
)

// Event is one ordered lifecycle notification produced by the executor.
// After emission it should be treated as immutable. Delivery (websocket, log,
// storage) is the sink implementer's concern.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	SessionID string         `json:"session_id"`
	TaskID    string         `json:"task_id,omitempty"`
	AgentName string         `json:"agent_name,omitempty"`
	SkillID   string         `json:"skill_id,omitempty"`
	Error     string         `json:"error,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent creates a bare event bound to a session.
func NewEvent(t EventType, sessionID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}
}

// NewAgentEvent creates an agent lifecycle event carrying task attribution.
func NewAgentEvent(t EventType, sessionID string, task *Task) Event {
	e := NewEvent(t, sessionID)
	e.TaskID = task.ID
	e.AgentName = task.AgentName
	e.SkillID = task.SkillID
	return e
}

// NewAgentErrorEvent records a failed skill call for a task.
func NewAgentErrorEvent(sessionID string, task *Task, err error) Event {
	e := NewAgentEvent(EventAgentError, sessionID, task)
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// NewCellCreatedEvent announces a derived content artifact.
func NewCellCreatedEvent(sessionID string, cell Cell) Event {
	e := NewEvent(EventCellCreated, sessionID)
	e.AgentName = cell.AgentName
	e.SkillID = cell.SkillID
	e.Data = map[string]any{"cell_id": cell.ID, "cell_type": string(cell.Type)}
	return e
}

// NewWorkflowFailedEvent records a run ending in failure.
func NewWorkflowFailedEvent(sessionID string, err error) Event {
	e := NewEvent(EventWorkflowFailed, sessionID)
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// EventSink receives ordered lifecycle events from the executor. Emit must
// not block the scheduling loop; implementations that deliver remotely should
// buffer or drop.
type EventSink interface {
	Emit(ev Event)
}
