package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/researchmesh/a2a"
)

func TestNew(t *testing.T) {
	reg, err := New(a2a.DefaultCards()...)
	require.NoError(t, err)

	assert.Len(t, reg.Names(), 6)
	assert.Equal(t, reg.Names()[0], reg.Cards()[0].Name)

	card, ok := reg.Get(a2a.AgentHypothesis)
	require.True(t, ok)
	assert.Equal(t, a2a.AgentHypothesis, card.Name)

	_, ok = reg.Get("unknown_agent")
	assert.False(t, ok)
}

func TestNew_DuplicateCard(t *testing.T) {
	card := a2a.DefaultCards()[0]
	_, err := New(card, card)
	assert.ErrorContains(t, err, "duplicate agent card")
}

func TestRegistry_FindSkill(t *testing.T) {
	reg, err := New(a2a.DefaultCards()...)
	require.NoError(t, err)

	skill, ok := reg.FindSkill(a2a.AgentCodeGen, a2a.SkillGenerateCode)
	require.True(t, ok)
	assert.Equal(t, a2a.SkillGenerateCode, skill.ID)

	assert.True(t, reg.HasSkill(a2a.AgentAnalysis, a2a.SkillAnalyzeResults))
	assert.False(t, reg.HasSkill(a2a.AgentAnalysis, a2a.SkillGenerateCode))
	assert.False(t, reg.HasSkill("unknown_agent", a2a.SkillGenerateCode))
}

func TestRegistry_ValidateInput(t *testing.T) {
	reg, err := New(a2a.DefaultCards()...)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		err := reg.ValidateInput(a2a.AgentHypothesis, a2a.SkillGenerateHypotheses, map[string]any{
			"literature_summary": "survey",
			"research_gap":       "gap",
			"domain":             "cs",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := reg.ValidateInput(a2a.AgentHypothesis, a2a.SkillGenerateHypotheses, map[string]any{
			"domain": "cs",
		})
		assert.Error(t, err)
	})

	t.Run("no schema validates trivially", func(t *testing.T) {
		assert.NoError(t, reg.ValidateInput("unknown_agent", "unknown_skill", nil))
	})

	t.Run("go typed values are normalized", func(t *testing.T) {
		err := reg.ValidateInput(a2a.AgentExecution, a2a.SkillExecuteExperiment, map[string]any{
			"experiment_id": "sess-1",
			"code":          "print(1)",
		})
		assert.NoError(t, err)
	})
}
