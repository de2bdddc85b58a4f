package orchestrator

import (
	"fmt"
	"strings"
)

// DeadlockError reports a run aborted because no task was ready while
// unfinished tasks remained and no upstream failure explained it. This
// indicates a planning defect (e.g. a dependency cycle), not a data
// condition, and is therefore surfaced distinctly from ordinary task failure.
type DeadlockError struct {
	Pending []string
}

// Error implements the error interface.
func (e *DeadlockError) Error() string {
	return fmt.Sprintf("task dependency deadlock detected, pending: [%s]", strings.Join(e.Pending, ", "))
}

// PlanError reports a structurally invalid task plan, detected before any
// task is dispatched.
type PlanError struct {
	TaskID string
	Reason string
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	return fmt.Sprintf("invalid task plan: task %s: %s", e.TaskID, e.Reason)
}

// UnresolvedReferenceError reports a placeholder referencing a task that has
// no stored result. Scheduling guarantees a referenced task completed before
// its dependents dispatch, so hitting this is a programming error, not a
// degradation case.
type UnresolvedReferenceError struct {
	TaskID string // task being resolved
	Param  string // parameter holding the reference
	RefID  string // referenced task id
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("task %s: parameter %q references task %s which has no stored result", e.TaskID, e.Param, e.RefID)
}
