// Package orchestrator implements the task orchestration engine: the planner
// that builds a session's task graph, the placeholder resolver that rewrites
// task inputs at dispatch time, and the wave-based executor that schedules
// ready tasks concurrently while respecting dependency order and isolating
// failures.
//
// Scheduling is bulk-synchronous: each round dispatches the full ready
// frontier and waits for the whole wave to settle before computing the next
// one. Dependency chains here are shallow (at most five stages), so the
// barrier cost is negligible and failure semantics stay easy to reason about;
// a dataflow scheduler that dispatches the instant a task's dependencies
// resolve would only pay off for much larger graphs.
package orchestrator
