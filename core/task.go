package core

import (
	"encoding/json"
	"time"
)

// TaskStatus enumerates the lifecycle states of a task within a run.
type TaskStatus string

const (
	// TaskPending means the task has been planned but not yet dispatched.
	TaskPending TaskStatus = "pending"
	// TaskRunning means the task has been dispatched and its skill call is in flight.
	TaskRunning TaskStatus = "running"
	// TaskCompleted means the skill call succeeded and the result is stored.
	TaskCompleted TaskStatus = "completed"
	// TaskFailed means the skill call raised or reported an error status.
	TaskFailed TaskStatus = "failed"
	// TaskSkipped marks a task that can never become ready because an
	// ancestor failed. Skipped tasks are never dispatched.
	TaskSkipped TaskStatus = "skipped"
)

// Terminal reports whether the status permits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskSkipped
}

// Task is one planned invocation of an agent skill. Tasks are created by the
// planner, mutated only by the executor (status/result/error transitions) and
// discarded at the end of the run; only their side effects (session results,
// cells, memory records) outlive it.
type Task struct {
	ID          string           `json:"id"`
	AgentName   string           `json:"agent_name"`
	SkillID     string           `json:"skill_id"`
	Params      map[string]Param `json:"-"`
	DependsOn   []string         `json:"depends_on,omitempty"`
	Status      TaskStatus       `json:"status"`
	Result      json.RawMessage  `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
	StartedAt   time.Time        `json:"started_at,omitzero"`
	CompletedAt time.Time        `json:"completed_at,omitzero"`
}

// NewTask creates a pending task targeting the named agent skill.
func NewTask(id, agentName, skillID string, params map[string]Param, dependsOn ...string) *Task {
	return &Task{
		ID:        id,
		AgentName: agentName,
		SkillID:   skillID,
		Params:    params,
		DependsOn: dependsOn,
		Status:    TaskPending,
	}
}
