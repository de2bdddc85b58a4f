package model

import (
	"context"
	"sync"
)

// Request captures the prompt material for one completion.
type Request struct {
	// System is the agent's system prompt, may be empty.
	System string `json:"system,omitempty"`
	// Prompt is the rendered skill prompt.
	Prompt string `json:"prompt"`
}

// Usage captures token usage statistics for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed model output.
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage *Usage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the interface locally bound agent clients drive generation through.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// It returns the configured Text (or Err) and records every request.
type MockModel struct {
	Text string
	Err  error

	mu       sync.Mutex
	requests []Request
}

// Generate returns the canned response, recording the request.
func (m *MockModel) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return &Response{Text: m.Text, Model: "mock"}, nil
}

// Info identifies the mock implementation.
func (m *MockModel) Info() Info {
	return Info{Name: "mock", Provider: "mock"}
}

// Requests returns a copy of the recorded requests.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
