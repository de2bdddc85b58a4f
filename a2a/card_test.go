package a2a

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCards(t *testing.T) {
	cards := DefaultCards()
	require.Len(t, cards, 6)

	byName := map[string]Card{}
	for _, c := range cards {
		byName[c.Name] = c
	}

	tests := []struct {
		agent string
		skill string
	}{
		{AgentHypothesis, SkillGenerateHypotheses},
		{AgentExperiment, SkillDesignExperiment},
		{AgentCodeGen, SkillGenerateCode},
		{AgentExecution, SkillExecuteExperiment},
		{AgentAnalysis, SkillAnalyzeResults},
		{AgentLiterature, SkillReviewLiterature},
	}
	for _, tt := range tests {
		card, ok := byName[tt.agent]
		require.Truef(t, ok, "missing card %s", tt.agent)
		assert.True(t, card.HasSkill(tt.skill))
		assert.True(t, card.Local())
		assert.Equal(t, ProtocolVersion, card.ProtocolVersion)
	}
}

func TestCard_Skill(t *testing.T) {
	card := DefaultCards()[0]

	s, ok := card.Skill(SkillGenerateHypotheses)
	require.True(t, ok)
	assert.Equal(t, SkillGenerateHypotheses, s.ID)
	assert.NotEmpty(t, s.Description)
	assert.NotNil(t, s.InputSchema)

	_, ok = card.Skill("no_such_skill")
	assert.False(t, ok)
}

func TestLoadCards(t *testing.T) {
	doc := `
- name: hypothesis_agent
  displayName: Hypothesis Agent
  version: "1.0.0"
  protocolVersion: "0.3"
  endpoint: http://agents.internal:8001
  capabilities:
    streaming: false
  skills:
    - id: generate_hypotheses
      name: Generate Hypotheses
      description: Propose testable hypotheses from a literature summary.
`
	cards, err := LoadCards(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "hypothesis_agent", cards[0].Name)
	assert.False(t, cards[0].Local())
	assert.True(t, cards[0].HasSkill("generate_hypotheses"))
}

func TestLoadCards_Invalid(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, err := LoadCards(strings.NewReader("- version: \"1.0.0\"\n  skills:\n    - id: x\n"))
		assert.ErrorContains(t, err, "missing name")
	})

	t.Run("no skills", func(t *testing.T) {
		_, err := LoadCards(strings.NewReader("- name: empty_agent\n"))
		assert.ErrorContains(t, err, "no skills")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadCards(strings.NewReader("- name: a\n  bogus: true\n  skills:\n    - id: x\n"))
		assert.Error(t, err)
	})
}
