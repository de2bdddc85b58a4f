package testutil

import (
	"github.com/hupe1980/researchmesh/core"
)

// TaskBuilder provides a fluent helper for constructing tasks in tests.
// Example:
//
//	task := NewTaskBuilder("task_2", "experiment_agent", "design_experiment").
//		Ref("hypothesis", "task_1", "").
//		DependsOn("task_1").
//		Build()
//
// Chain only the parts you need.
type TaskBuilder struct {
	id        string
	agentName string
	skillID   string
	params    map[string]core.Param
	dependsOn []string
}

// NewTaskBuilder creates a builder for the given task identity.
func NewTaskBuilder(id, agentName, skillID string) *TaskBuilder {
	return &TaskBuilder{id: id, agentName: agentName, skillID: skillID, params: map[string]core.Param{}}
}

// Literal adds a literal parameter (chainable).
func (b *TaskBuilder) Literal(name string, value any) *TaskBuilder {
	b.params[name] = core.Literal{Value: value}
	return b
}

// Ref adds a reference parameter to another task's result (chainable). An
// empty path references the whole result.
func (b *TaskBuilder) Ref(name, taskID, path string) *TaskBuilder {
	b.params[name] = core.Reference{TaskID: taskID, Path: path}
	return b
}

// DependsOn appends dependency task ids (chainable).
func (b *TaskBuilder) DependsOn(ids ...string) *TaskBuilder {
	b.dependsOn = append(b.dependsOn, ids...)
	return b
}

// Build constructs the pending task.
func (b *TaskBuilder) Build() *core.Task {
	return core.NewTask(b.id, b.agentName, b.skillID, b.params, b.dependsOn...)
}
