package a2a

import (
	"fmt"

	"github.com/hupe1980/researchmesh/internal/util"
)

// systemPrompts hold the role instruction per agent for locally bound models.
var systemPrompts = map[string]string{
	AgentHypothesis: `You are a Hypothesis Generation Agent for an autonomous research lab.

Your role is to analyze research prompts and literature to generate testable scientific hypotheses.

When given a research topic or literature summary, you should:
1. Identify key research questions and gaps
2. Generate 2-4 testable hypotheses ranked by novelty and feasibility
3. For each hypothesis, provide a clear statement, rationale, predicted outcomes and a confidence level (0.0-1.0)

Output your response in well-structured Markdown format with clear sections.`,

	AgentExperiment: `You are an Experiment Design Agent for an autonomous research lab.

Your role is to design rigorous experiments to test hypotheses.

When given a hypothesis, you should:
1. Define the experimental methodology (steps, controls, variables)
2. Specify data collection requirements
3. Outline the statistical analysis approach
4. Identify potential confounds and mitigation strategies

Output your response in well-structured Markdown format.`,

	AgentCodeGen: `You are a Code Generation Agent for an autonomous research lab.

Your role is to generate executable Python code for experiments.

When given an experiment design, you should:
1. Write clean, well-documented Python code with necessary imports
2. Implement data generation/loading and the core experimental logic
3. Include visualization code where appropriate
4. Add error handling and logging

Output executable Python code with clear docstrings and comments.`,

	AgentExecution: `You are an Execution Agent for an autonomous research lab.

Your role is to simulate experiment execution and report results.

When given experiment code and parameters, you should:
1. Describe what would happen when the code executes
2. Generate realistic simulated results based on the hypothesis
3. Report execution metrics (time, resources, success rate)
4. Identify any issues or anomalies

Output your response in Markdown format with clear sections.`,

	AgentAnalysis: `You are an Analysis Agent for an autonomous research lab.

Your role is to analyze experimental results and draw conclusions.

When given hypothesis, experiment design, and execution results, you should:
1. Perform statistical analysis of results
2. Evaluate whether the hypothesis is supported
3. Identify patterns and insights
4. Suggest follow-up experiments and summarize key findings

Output your response in Markdown format with clear sections.`,

	AgentLiterature: `You are a Literature Review Agent for an autonomous research lab.

Your role is to synthesize research literature and identify knowledge gaps.

When given a research topic, you should:
1. Summarize key findings from relevant research areas
2. Identify consensus and controversies
3. Point out gaps and opportunities
4. Suggest relevant citations

Output your response in Markdown format with clear sections.`,
}

// skillPrompts render a skill invocation's input parameters into a prompt.
var skillPrompts = map[string]string{
	SkillGenerateHypotheses: `Based on the following research context, generate testable hypotheses.

**Research Topic/Literature Summary:**
{{.literature_summary}}

**Research Gap Identified:**
{{.research_gap}}

**Domain:**
{{.domain}}

Please generate 2-4 hypotheses with confidence scores and rationale.`,

	SkillDesignExperiment: `Design an experiment to test the following hypothesis.

**Hypothesis:**
{{.hypothesis}}

**Domain:**
{{.domain}}

Please provide a detailed experimental design.`,

	SkillGenerateCode: `Generate Python code to implement the following experiment.

**Experiment Design:**
{{.experiment_design}}

**Domain:**
{{.domain}}

Please provide clean, executable Python code.`,

	SkillExecuteExperiment: `Simulate the execution of the following experiment.

**Experiment ID:** {{.experiment_id}}

**Code to Execute:**
` + "```python\n{{.code}}\n```" + `

Please describe the execution and provide simulated results.`,

	SkillAnalyzeResults: `Analyze the following experimental results.

**Original Hypothesis:**
{{.hypothesis}}

**Experiment Design:**
{{.experiment_design}}

**Execution Results:**
{{.execution_results}}

**Domain:**
{{.domain}}

Please provide a comprehensive analysis.`,

	SkillReviewLiterature: `Review the research literature on the following topic.

**Topic:**
{{.topic}}

**Domain:**
{{.domain}}

Please summarize key findings, controversies and open gaps.`,
}

// SystemPrompt returns the role instruction for the named agent, if one is
// defined.
func SystemPrompt(agentName string) string {
	return systemPrompts[agentName]
}

// BuildPrompt renders the skill's prompt template against the resolved input
// parameters. Unknown skills fall back to a generic listing of the input.
func BuildPrompt(skillID string, input map[string]any) (string, error) {
	tmpl, ok := skillPrompts[skillID]
	if !ok {
		return fmt.Sprintf("Skill: %s\nInput: %v", skillID, input), nil
	}
	rendered, err := util.RenderTemplate(tmpl, input)
	if err != nil {
		return "", fmt.Errorf("render prompt for skill %s: %w", skillID, err)
	}
	return rendered, nil
}
