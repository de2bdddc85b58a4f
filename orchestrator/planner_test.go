package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/researchmesh/a2a"
	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/registry"
)

func fullRoster() []string {
	return []string{
		a2a.AgentHypothesis,
		a2a.AgentExperiment,
		a2a.AgentCodeGen,
		a2a.AgentExecution,
		a2a.AgentAnalysis,
	}
}

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	reg, err := registry.New(a2a.DefaultCards()...)
	require.NoError(t, err)
	return NewPlanner(reg, func(o *PlannerOptions) { o.Domain = "cs" })
}

func TestPlanner_FullRoster(t *testing.T) {
	tasks := newTestPlanner(t).Plan("sess-1", "study pivots", fullRoster())
	require.Len(t, tasks, 5)

	byID := map[string]*core.Task{}
	for _, task := range tasks {
		byID[task.ID] = task
	}

	assert.Empty(t, byID[TaskIDHypothesis].DependsOn)
	assert.Equal(t, []string{TaskIDHypothesis}, byID[TaskIDExperiment].DependsOn)
	assert.Equal(t, []string{TaskIDExperiment}, byID[TaskIDCodeGen].DependsOn)
	assert.Equal(t, []string{TaskIDCodeGen}, byID[TaskIDExecution].DependsOn)
	assert.ElementsMatch(t, []string{TaskIDHypothesis, TaskIDExperiment, TaskIDExecution}, byID[TaskIDAnalysis].DependsOn)

	// The prompt seeds the hypothesis stage as a literal.
	lit, ok := byID[TaskIDHypothesis].Params["literature_summary"].(core.Literal)
	require.True(t, ok)
	assert.Equal(t, "study pivots", lit.Value)

	// Execution reads generated code through a field reference.
	ref, ok := byID[TaskIDExecution].Params["code"].(core.Reference)
	require.True(t, ok)
	assert.Equal(t, TaskIDCodeGen, ref.TaskID)
	assert.Equal(t, "code", ref.Path)

	// The domain tag reaches every stage that declares it.
	dom, ok := byID[TaskIDAnalysis].Params["domain"].(core.Literal)
	require.True(t, ok)
	assert.Equal(t, "cs", dom.Value)
}

func TestPlanner_StageIDsStableUnderPartialRoster(t *testing.T) {
	tasks := newTestPlanner(t).Plan("sess-1", "p", []string{
		a2a.AgentHypothesis,
		a2a.AgentExperiment,
	})
	require.Len(t, tasks, 2)
	assert.Equal(t, TaskIDHypothesis, tasks[0].ID)
	assert.Equal(t, TaskIDExperiment, tasks[1].ID)
}

func TestPlanner_PrunesTasksWithMissingDependencies(t *testing.T) {
	// Analysis depends on execution; without the mid-pipeline agents it can
	// never run and must be pruned rather than planned into a deadlock.
	tasks := newTestPlanner(t).Plan("sess-1", "p", []string{
		a2a.AgentHypothesis,
		a2a.AgentAnalysis,
	})
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskIDHypothesis, tasks[0].ID)
}

func TestPlanner_PruningCascades(t *testing.T) {
	// No code generation: execution is pruned, which in turn prunes analysis.
	tasks := newTestPlanner(t).Plan("sess-1", "p", []string{
		a2a.AgentHypothesis,
		a2a.AgentExperiment,
		a2a.AgentExecution,
		a2a.AgentAnalysis,
	})
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{TaskIDHypothesis, TaskIDExperiment}, ids)
}

func TestPlanner_EmptyRoster(t *testing.T) {
	assert.Empty(t, newTestPlanner(t).Plan("sess-1", "p", nil))
}

func TestPlanner_IgnoresUnknownRosterAgents(t *testing.T) {
	tasks := newTestPlanner(t).Plan("sess-1", "p", []string{
		a2a.AgentHypothesis,
		"grant_writing_agent",
	})
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskIDHypothesis, tasks[0].ID)
}
