package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPrompt(t *testing.T) {
	for _, agent := range []string{
		AgentHypothesis, AgentExperiment, AgentCodeGen,
		AgentExecution, AgentAnalysis, AgentLiterature,
	} {
		assert.NotEmptyf(t, SystemPrompt(agent), "missing system prompt for %s", agent)
	}
	assert.Empty(t, SystemPrompt("unknown_agent"))
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(SkillGenerateHypotheses, map[string]any{
		"literature_summary": "sorting networks survey",
		"research_gap":       "adaptive pivot strategies",
		"domain":             "cs",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "sorting networks survey")
	assert.Contains(t, prompt, "adaptive pivot strategies")
	assert.Contains(t, prompt, "cs")
}

func TestBuildPrompt_UnknownSkillFallsBack(t *testing.T) {
	prompt, err := BuildPrompt("review_grant", map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "review_grant")
	assert.Contains(t, prompt, "title")
}
