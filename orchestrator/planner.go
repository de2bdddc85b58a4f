package orchestrator

import (
	"github.com/hupe1980/researchmesh/a2a"
	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/registry"
)

// Stable task ids for the research pipeline stages.
const (
	TaskIDHypothesis = "task_1"
	TaskIDExperiment = "task_2"
	TaskIDCodeGen    = "task_3"
	TaskIDExecution  = "task_4"
	TaskIDAnalysis   = "task_5"
)

// PlannerOptions configures plan construction.
type PlannerOptions struct {
	// Domain tags every stage's input (cs, biology, physics, general).
	Domain string
}

// Planner builds the ordered task set for a session's research workflow: a
// fixed five-stage pipeline (hypothesis generation, experiment design, code
// generation, execution, analysis) wired with explicit dependencies and
// placeholder references. The planner performs no execution; it is pure
// construction.
//
// Stage ids are stable regardless of which stages are present. A stage is
// included only when the session roster enables an agent providing its skill;
// a task whose dependencies reference stages that were never planned is
// pruned, so the executor is always handed a closed dependency graph.
type Planner struct {
	registry *registry.Registry
	domain   string
}

// NewPlanner creates a planner over the given registry.
func NewPlanner(reg *registry.Registry, optFns ...func(o *PlannerOptions)) *Planner {
	opts := PlannerOptions{Domain: "general"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Planner{registry: reg, domain: opts.Domain}
}

// Plan produces the task set for one workflow run. The initial prompt seeds
// the hypothesis stage; downstream stages consume upstream results through
// placeholder references, so every reference targets a (transitive)
// dependency of the referencing task.
func (p *Planner) Plan(sessionID, prompt string, roster []string) []*core.Task {
	enabled := make(map[string]bool, len(roster))
	for _, name := range roster {
		enabled[name] = true
	}

	domain := core.Literal{Value: p.domain}

	candidates := []*core.Task{
		core.NewTask(TaskIDHypothesis, a2a.AgentHypothesis, a2a.SkillGenerateHypotheses, map[string]core.Param{
			"literature_summary": core.Literal{Value: prompt},
			"research_gap":       core.Literal{Value: "identified from prompt"},
			"domain":             domain,
		}),
		core.NewTask(TaskIDExperiment, a2a.AgentExperiment, a2a.SkillDesignExperiment, map[string]core.Param{
			"hypothesis": core.Reference{TaskID: TaskIDHypothesis},
			"domain":     domain,
		}, TaskIDHypothesis),
		core.NewTask(TaskIDCodeGen, a2a.AgentCodeGen, a2a.SkillGenerateCode, map[string]core.Param{
			"experiment_design": core.Reference{TaskID: TaskIDExperiment},
			"domain":            domain,
		}, TaskIDExperiment),
		core.NewTask(TaskIDExecution, a2a.AgentExecution, a2a.SkillExecuteExperiment, map[string]core.Param{
			"experiment_id": core.Literal{Value: sessionID},
			"code":          core.Reference{TaskID: TaskIDCodeGen, Path: "code"},
		}, TaskIDCodeGen),
		core.NewTask(TaskIDAnalysis, a2a.AgentAnalysis, a2a.SkillAnalyzeResults, map[string]core.Param{
			"hypothesis":        core.Reference{TaskID: TaskIDHypothesis},
			"experiment_design": core.Reference{TaskID: TaskIDExperiment},
			"execution_results": core.Reference{TaskID: TaskIDExecution},
			"domain":            domain,
		}, TaskIDHypothesis, TaskIDExperiment, TaskIDExecution),
	}

	// Candidates are ordered so dependencies precede dependents, so one pass
	// both filters disabled stages and prunes tasks with unplanned deps.
	planned := make(map[string]bool, len(candidates))
	tasks := make([]*core.Task, 0, len(candidates))
	for _, t := range candidates {
		if !enabled[t.AgentName] || !p.registry.HasSkill(t.AgentName, t.SkillID) {
			continue
		}
		if !depsPlanned(t, planned) {
			continue
		}
		planned[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

func depsPlanned(t *core.Task, planned map[string]bool) bool {
	for _, dep := range t.DependsOn {
		if !planned[dep] {
			return false
		}
	}
	return true
}
