package a2a

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical research agent names.
const (
	AgentHypothesis = "hypothesis_agent"
	AgentExperiment = "experiment_agent"
	AgentCodeGen    = "code_gen_agent"
	AgentExecution  = "execution_agent"
	AgentAnalysis   = "analysis_agent"
	AgentLiterature = "literature_agent"
)

// Canonical skill identifiers offered by the research agents.
const (
	SkillGenerateHypotheses = "generate_hypotheses"
	SkillDesignExperiment   = "design_experiment"
	SkillGenerateCode       = "generate_code"
	SkillExecuteExperiment  = "execute_experiment"
	SkillAnalyzeResults     = "analyze_results"
	SkillReviewLiterature   = "review_literature"
)

// ProtocolVersion is the agent protocol version the cards declare.
const ProtocolVersion = "0.3"

// Capabilities carries the agent's capability flags. Field names use
// camelCase JSON tags to conform to the discovery document format.
type Capabilities struct {
	Streaming              bool `json:"streaming" yaml:"streaming"`
	PushNotifications      bool `json:"pushNotifications" yaml:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory" yaml:"stateTransitionHistory"`
	// MaxConcurrent limits simultaneous invocations; 0 means unbounded.
	MaxConcurrent int `json:"maxConcurrent,omitempty" yaml:"maxConcurrent,omitempty"`
}

// Skill describes one capability an agent offers, including the free-form
// JSON schemas of its input parameters and output document.
type Skill struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	Tags         []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	InputSchema  map[string]any `json:"inputSchema,omitempty" yaml:"inputSchema,omitempty"`
	OutputSchema map[string]any `json:"outputSchema,omitempty" yaml:"outputSchema,omitempty"`
}

// Card is the static discovery document describing an agent's identity and
// offered skills. Cards are created at process start and never mutated.
type Card struct {
	Name               string       `json:"name" yaml:"name"`
	DisplayName        string       `json:"displayName" yaml:"displayName"`
	Description        string       `json:"description" yaml:"description"`
	Version            string       `json:"version" yaml:"version"`
	ProtocolVersion    string       `json:"protocolVersion" yaml:"protocolVersion"`
	Capabilities       Capabilities `json:"capabilities" yaml:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes,omitempty" yaml:"defaultInputModes,omitempty"`
	DefaultOutputModes []string     `json:"defaultOutputModes,omitempty" yaml:"defaultOutputModes,omitempty"`
	// Endpoint is the base URL for remote invocation; empty marks a local agent.
	Endpoint string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Skills   []Skill `json:"skills" yaml:"skills"`
}

// Skill returns the skill with the given id, if declared.
func (c Card) Skill(id string) (Skill, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// HasSkill reports whether the card declares the given skill id.
func (c Card) HasSkill(id string) bool {
	_, ok := c.Skill(id)
	return ok
}

// Local reports whether the agent runs in-process (no endpoint declared).
func (c Card) Local() bool { return c.Endpoint == "" }

// LoadCards decodes a YAML list of agent cards.
func LoadCards(r io.Reader) ([]Card, error) {
	var cards []Card
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode agent cards: %w", err)
	}
	for i, c := range cards {
		if c.Name == "" {
			return nil, fmt.Errorf("agent card %d: missing name", i)
		}
		if len(c.Skills) == 0 {
			return nil, fmt.Errorf("agent card %q: no skills declared", c.Name)
		}
	}
	return cards, nil
}

// LoadCardsFile reads agent cards from a YAML file.
func LoadCardsFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open agent cards file: %w", err)
	}
	defer f.Close()
	return LoadCards(f)
}

// textModes is the default modality set for the built-in cards.
var textModes = []string{"text"}

// DefaultCards returns the static descriptors of the built-in research
// agents. All default cards are local (stub or model-backed).
func DefaultCards() []Card {
	return []Card{
		{
			Name:               AgentHypothesis,
			DisplayName:        "Hypothesis Generation Agent",
			Description:        "Generates testable research hypotheses from literature analysis and research gaps",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 3},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillGenerateHypotheses,
				Name:        "Generate Hypotheses",
				Description: "Generate testable hypotheses from research prompts",
				Tags:        []string{"research", "hypothesis"},
				InputSchema: objectSchema(map[string]string{
					"literature_summary": "Summary of reviewed literature",
					"research_gap":       "Identified research gap",
					"domain":             "Scientific domain (cs, biology, physics, general)",
				}, "literature_summary", "research_gap", "domain"),
				OutputSchema: resultSchema("hypotheses"),
			}},
		},
		{
			Name:               AgentExperiment,
			DisplayName:        "Experiment Designer",
			Description:        "Designs rigorous experiments to test hypotheses",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 3},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillDesignExperiment,
				Name:        "Design Experiment",
				Description: "Design experiments to test hypotheses",
				Tags:        []string{"research", "experiment"},
				InputSchema: objectSchema(map[string]string{
					"hypothesis": "Hypothesis to design an experiment for",
					"domain":     "Scientific domain",
				}, "hypothesis"),
				OutputSchema: resultSchema("design"),
			}},
		},
		{
			Name:               AgentCodeGen,
			DisplayName:        "Code Generator",
			Description:        "Generates executable Python code for experiments",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 2},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillGenerateCode,
				Name:        "Generate Code",
				Description: "Generate Python code for experiments",
				Tags:        []string{"research", "code"},
				InputSchema: objectSchema(map[string]string{
					"experiment_design": "Experiment design to implement",
					"domain":            "Scientific domain",
				}, "experiment_design"),
				OutputSchema: resultSchema("code", "language"),
			}},
		},
		{
			Name:               AgentExecution,
			DisplayName:        "Execution Engine",
			Description:        "Runs experiment code in a sandbox and reports results",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 1},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillExecuteExperiment,
				Name:        "Execute Experiment",
				Description: "Execute experiments and report results",
				Tags:        []string{"research", "execution"},
				InputSchema: objectSchema(map[string]string{
					"experiment_id": "Identifier of the experiment run",
					"code":          "Code to execute",
				}, "code"),
				OutputSchema: resultSchema("execution_id", "metrics"),
			}},
		},
		{
			Name:               AgentAnalysis,
			DisplayName:        "Analysis Agent",
			Description:        "Analyzes experimental results and draws conclusions",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 3},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillAnalyzeResults,
				Name:        "Analyze Results",
				Description: "Analyze experimental results",
				Tags:        []string{"research", "analysis"},
				InputSchema: objectSchema(map[string]string{
					"hypothesis":        "Original hypothesis",
					"experiment_design": "Experiment design",
					"execution_results": "Execution results to analyze",
					"domain":            "Scientific domain",
				}, "execution_results"),
				OutputSchema: resultSchema("analysis"),
			}},
		},
		{
			Name:               AgentLiterature,
			DisplayName:        "Literature Review Agent",
			Description:        "Synthesizes research literature and identifies knowledge gaps",
			Version:            "0.1.0",
			ProtocolVersion:    ProtocolVersion,
			Capabilities:       Capabilities{MaxConcurrent: 3},
			DefaultInputModes:  textModes,
			DefaultOutputModes: textModes,
			Skills: []Skill{{
				ID:          SkillReviewLiterature,
				Name:        "Review Literature",
				Description: "Review and synthesize literature",
				Tags:        []string{"research", "literature"},
				InputSchema: objectSchema(map[string]string{
					"topic":  "Research topic to review",
					"domain": "Scientific domain",
				}, "topic"),
				OutputSchema: resultSchema(),
			}},
		},
	}
}

// objectSchema builds a flat object schema of string properties.
func objectSchema(props map[string]string, required ...string) map[string]any {
	properties := make(map[string]any, len(props))
	for name, desc := range props {
		properties[name] = map[string]any{"type": "string", "description": desc}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

// resultSchema builds the common output envelope schema plus skill specific keys.
func resultSchema(extra ...string) map[string]any {
	properties := map[string]any{
		"status":      map[string]any{"type": "string"},
		"raw_output":  map[string]any{"type": "string"},
		"model_used":  map[string]any{"type": "string"},
		"tokens_used": map[string]any{"type": "integer"},
	}
	for _, name := range extra {
		properties[name] = map[string]any{}
	}
	return map[string]any{"type": "object", "properties": properties}
}
