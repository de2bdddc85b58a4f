package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/hupe1980/researchmesh/a2a"
	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/internal/testutil"
)

// TestExecuteTasks_Properties drives the executor with randomly generated
// acyclic plans mixing healthy (stub-backed) and broken (failing endpoint)
// agents, and checks the scheduling invariants hold for every shape:
//
//   - the run always terminates without a scheduler error
//   - every task ends in exactly one terminal state
//   - a completed task has only completed dependencies
//   - a skipped task has at least one failed or skipped dependency
//   - only broken-agent tasks fail
func TestExecuteTasks_Properties(t *testing.T) {
	env := newTestEnv(t, cardsWithBrokenAgent(t, a2a.AgentExperiment))

	type plan struct {
		tasks  []*core.Task
		byID   map[string]*core.Task
		broken map[string]bool
	}

	runPlan := func(n int, seed int64) (plan, error) {
		rng := rand.New(rand.NewSource(seed))
		tasks := make([]*core.Task, 0, n)
		broken := map[string]bool{}

		for i := 0; i < n; i++ {
			id := fmt.Sprintf("task_%d", i)
			agent, skill := a2a.AgentHypothesis, a2a.SkillGenerateHypotheses
			if rng.Intn(4) == 0 {
				agent, skill = a2a.AgentExperiment, a2a.SkillDesignExperiment
				broken[id] = true
			}

			b := testutil.NewTaskBuilder(id, agent, skill).Literal("literature_summary", "x")
			for j := 0; j < i; j++ {
				if rng.Intn(3) == 0 {
					dep := fmt.Sprintf("task_%d", j)
					b.DependsOn(dep)
					b.Ref(fmt.Sprintf("upstream_%d", j), dep, "")
				}
			}
			tasks = append(tasks, b.Build())
		}

		sess := env.createSession(t, fullRoster())
		err := env.orch.executeTasks(context.Background(), sess, tasks)

		byID := make(map[string]*core.Task, len(tasks))
		for _, task := range tasks {
			byID[task.ID] = task
		}
		return plan{tasks: tasks, byID: byID, broken: broken}, err
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("every task settles in exactly one terminal state", prop.ForAll(
		func(n int, seed int64) bool {
			p, err := runPlan(n, seed)
			if err != nil {
				return false
			}
			for _, task := range p.tasks {
				if !task.Status.Terminal() {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10), gen.Int64(),
	))

	properties.Property("terminal states are consistent with dependencies", prop.ForAll(
		func(n int, seed int64) bool {
			p, err := runPlan(n, seed)
			if err != nil {
				return false
			}
			for _, task := range p.tasks {
				switch task.Status {
				case core.TaskCompleted:
					for _, dep := range task.DependsOn {
						if p.byID[dep].Status != core.TaskCompleted {
							return false
						}
					}
				case core.TaskSkipped:
					var upstream bool
					for _, dep := range task.DependsOn {
						s := p.byID[dep].Status
						if s == core.TaskFailed || s == core.TaskSkipped {
							upstream = true
						}
					}
					if !upstream {
						return false
					}
				case core.TaskFailed:
					if !p.broken[task.ID] {
						return false
					}
				default:
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10), gen.Int64(),
	))

	properties.TestingRun(t)
}
