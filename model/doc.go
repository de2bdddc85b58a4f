// Package model defines the minimal LLM contract used by locally bound agent
// clients. A skill invocation needs exactly one completion for a rendered
// prompt, so the interface is single-shot rather than a streaming
// conversation. Provider adapters live in the anthropic and openai
// subpackages; MockModel serves tests and examples.
package model
