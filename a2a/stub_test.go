package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestStubResponse_Shapes(t *testing.T) {
	t.Run("hypotheses", func(t *testing.T) {
		out := StubResponse(AgentHypothesis, SkillGenerateHypotheses, map[string]any{
			"literature_summary": "prior work on sorting",
		})
		assert.Equal(t, "success", gjson.GetBytes(out, "status").String())
		assert.Contains(t, gjson.GetBytes(out, "raw_output").String(), "prior work on sorting")
		assert.Equal(t, int64(2), gjson.GetBytes(out, "hypotheses.#").Int())
		assert.Equal(t, "h1", gjson.GetBytes(out, "hypotheses.0.id").String())
	})

	t.Run("code", func(t *testing.T) {
		out := StubResponse(AgentCodeGen, SkillGenerateCode, nil)
		assert.True(t, gjson.GetBytes(out, "code").Exists())
		assert.Equal(t, "python", gjson.GetBytes(out, "language").String())
		// No raw_output for code skills; the code field is the artifact.
		assert.False(t, gjson.GetBytes(out, "raw_output").Exists())
	})

	t.Run("execution echoes experiment id", func(t *testing.T) {
		out := StubResponse(AgentExecution, SkillExecuteExperiment, map[string]any{
			"experiment_id": "sess-42",
		})
		assert.Equal(t, "sess-42", gjson.GetBytes(out, "execution_id").String())
		assert.True(t, gjson.GetBytes(out, "metrics.success_rate").Exists())
	})

	t.Run("unknown skill falls back", func(t *testing.T) {
		out := StubResponse("mystery_agent", "mystery_skill", map[string]any{"k": "v"})
		assert.Equal(t, "success", gjson.GetBytes(out, "status").String())
		assert.Equal(t, "v", gjson.GetBytes(out, "input_received.k").String())
	})
}

func TestStubResponse_Attribution(t *testing.T) {
	out := StubResponse(AgentAnalysis, SkillAnalyzeResults, nil)
	assert.Equal(t, AgentAnalysis, gjson.GetBytes(out, "agent_name").String())
	assert.Equal(t, SkillAnalyzeResults, gjson.GetBytes(out, "skill_name").String())
	assert.Equal(t, "stub", gjson.GetBytes(out, "model_used").String())
}
