package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/logging"
)

// Resolver rewrites a task's declared input parameters into concrete values
// at dispatch time by substituting references to prior tasks' results.
//
// Degradation policy: when a referenced task's result is present but the
// declared field path does not resolve (stub outputs commonly omit keys),
// the literal placeholder text is substituted instead of failing the task.
// The degradation is logged at warn level because the downstream agent then
// receives template text instead of real data. A reference to a task absent
// from the result map entirely is a programming error and raises.
type Resolver struct {
	logger logging.Logger
}

// NewResolver creates a resolver. A nil logger is replaced with NoOp.
func NewResolver(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Resolver{logger: logger}
}

// Resolve returns the concrete parameters for the task. It never mutates its
// inputs and is idempotent: the same params against the same result map yield
// identical output.
func (r *Resolver) Resolve(taskID string, params map[string]core.Param, results map[string]json.RawMessage) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for name, p := range params {
		switch v := p.(type) {
		case core.Literal:
			out[name] = v.Value
		case core.Reference:
			raw, ok := results[v.TaskID]
			if !ok {
				return nil, &UnresolvedReferenceError{TaskID: taskID, Param: name, RefID: v.TaskID}
			}
			out[name] = r.navigate(taskID, name, v, raw)
		default:
			return nil, fmt.Errorf("task %s: parameter %q has unsupported type %T", taskID, name, p)
		}
	}
	return out, nil
}

// navigate extracts the referenced portion of an upstream result.
func (r *Resolver) navigate(taskID, param string, ref core.Reference, raw json.RawMessage) any {
	if ref.Path == "" {
		var whole any
		if err := json.Unmarshal(raw, &whole); err != nil {
			return string(raw)
		}
		return whole
	}
	res := gjson.GetBytes(raw, ref.Path)
	if !res.Exists() {
		r.logger.Warn("Placeholder field missing from upstream result, substituting literal placeholder",
			"task_id", taskID, "param", param, "ref_task_id", ref.TaskID, "path", ref.Path)
		return ref.Placeholder()
	}
	return res.Value()
}
