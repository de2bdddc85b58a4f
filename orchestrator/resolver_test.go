package orchestrator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/researchmesh/core"
)

func TestResolver_Literals(t *testing.T) {
	r := NewResolver(nil)
	out, err := r.Resolve("task_1", map[string]core.Param{
		"domain": core.Literal{Value: "cs"},
		"count":  core.Literal{Value: 3},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cs", out["domain"])
	assert.Equal(t, 3, out["count"])
}

func TestResolver_WholeResultReference(t *testing.T) {
	r := NewResolver(nil)
	results := map[string]json.RawMessage{
		"task_1": json.RawMessage(`{"status":"success","hypotheses":[{"id":"h1"}]}`),
	}
	out, err := r.Resolve("task_2", map[string]core.Param{
		"hypothesis": core.Reference{TaskID: "task_1"},
	}, results)
	require.NoError(t, err)

	m, ok := out["hypothesis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", m["status"])
}

func TestResolver_FieldReference(t *testing.T) {
	r := NewResolver(nil)
	results := map[string]json.RawMessage{
		"task_3": json.RawMessage(`{"status":"success","code":"print(1)","language":"python"}`),
	}
	out, err := r.Resolve("task_4", map[string]core.Param{
		"code": core.Reference{TaskID: "task_3", Path: "code"},
	}, results)
	require.NoError(t, err)
	assert.Equal(t, "print(1)", out["code"])
}

func TestResolver_NestedPath(t *testing.T) {
	r := NewResolver(nil)
	results := map[string]json.RawMessage{
		"task_2": json.RawMessage(`{"design":{"steps":["setup","run"]}}`),
	}
	out, err := r.Resolve("task_3", map[string]core.Param{
		"first_step": core.Reference{TaskID: "task_2", Path: "design.steps.0"},
	}, results)
	require.NoError(t, err)
	assert.Equal(t, "setup", out["first_step"])
}

func TestResolver_MissingFieldDegradesToPlaceholder(t *testing.T) {
	// Stub outputs routinely omit declared fields. The reference degrades to
	// its literal placeholder text so the task still dispatches.
	r := NewResolver(nil)
	results := map[string]json.RawMessage{
		"task_3": json.RawMessage(`{"status":"success","raw_output":"no code key here"}`),
	}
	out, err := r.Resolve("task_4", map[string]core.Param{
		"code": core.Reference{TaskID: "task_3", Path: "code"},
	}, results)
	require.NoError(t, err)
	assert.Equal(t, "{{task_3.result.code}}", out["code"])
}

func TestResolver_MissingTaskIsError(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve("task_2", map[string]core.Param{
		"hypothesis": core.Reference{TaskID: "task_9"},
	}, map[string]json.RawMessage{})

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "task_2", unresolved.TaskID)
	assert.Equal(t, "hypothesis", unresolved.Param)
	assert.Equal(t, "task_9", unresolved.RefID)
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver(nil)
	params := map[string]core.Param{
		"domain":     core.Literal{Value: "cs"},
		"hypothesis": core.Reference{TaskID: "task_1", Path: "hypotheses.0.text"},
	}
	results := map[string]json.RawMessage{
		"task_1": json.RawMessage(`{"hypotheses":[{"text":"H1"}]}`),
	}

	first, err := r.Resolve("task_2", params, results)
	require.NoError(t, err)
	second, err := r.Resolve("task_2", params, results)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Params stay declarative; resolution never rewrites them.
	assert.IsType(t, core.Reference{}, params["hypothesis"])
}
