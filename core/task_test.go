package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	task := NewTask("task_2", "experiment_agent", "design_experiment", map[string]Param{
		"hypothesis": Reference{TaskID: "task_1"},
	}, "task_1")

	assert.Equal(t, "task_2", task.ID)
	assert.Equal(t, "experiment_agent", task.AgentName)
	assert.Equal(t, "design_experiment", task.SkillID)
	assert.Equal(t, []string{"task_1"}, task.DependsOn)
	assert.Equal(t, TaskPending, task.Status)
	assert.Empty(t, task.Error)
	assert.True(t, task.StartedAt.IsZero())
}

func TestTaskStatus_Terminal(t *testing.T) {
	assert.False(t, TaskPending.Terminal())
	assert.False(t, TaskRunning.Terminal())
	assert.True(t, TaskCompleted.Terminal())
	assert.True(t, TaskFailed.Terminal())
	assert.True(t, TaskSkipped.Terminal())
}
