// Package registry holds the explicit agent registry: the set of agent cards
// enabled for a process, with per-skill input schemas compiled once at
// construction. The registry is a plain value passed by reference into the
// planner and orchestrator; there is no ambient global state.
package registry

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/hupe1980/researchmesh/a2a"
)

// Registry indexes agent cards by name and offers skill lookup plus advisory
// input validation. Construct once at process start; read-only afterwards.
type Registry struct {
	cards        map[string]a2a.Card
	order        []string
	inputSchemas map[string]*jsonschema.Schema
}

// New builds a registry from the given cards, compiling every declared skill
// input schema. Duplicate agent names are rejected.
func New(cards ...a2a.Card) (*Registry, error) {
	r := &Registry{
		cards:        make(map[string]a2a.Card, len(cards)),
		inputSchemas: make(map[string]*jsonschema.Schema),
	}

	compiler := jsonschema.NewCompiler()
	type pending struct{ key, url string }
	var toCompile []pending

	for _, card := range cards {
		if _, exists := r.cards[card.Name]; exists {
			return nil, fmt.Errorf("duplicate agent card %q", card.Name)
		}
		r.cards[card.Name] = card
		r.order = append(r.order, card.Name)

		for _, skill := range card.Skills {
			if skill.InputSchema == nil {
				continue
			}
			url := fmt.Sprintf("mem://%s/%s.json", card.Name, skill.ID)
			if err := compiler.AddResource(url, skill.InputSchema); err != nil {
				return nil, fmt.Errorf("agent %s skill %s: add input schema: %w", card.Name, skill.ID, err)
			}
			toCompile = append(toCompile, pending{key: skillKey(card.Name, skill.ID), url: url})
		}
	}

	for _, p := range toCompile {
		sch, err := compiler.Compile(p.url)
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", p.key, err)
		}
		r.inputSchemas[p.key] = sch
	}

	return r, nil
}

// Get returns the card registered under the given agent name.
func (r *Registry) Get(name string) (a2a.Card, bool) {
	c, ok := r.cards[name]
	return c, ok
}

// Names returns the registered agent names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Cards returns all registered cards in registration order.
func (r *Registry) Cards() []a2a.Card {
	out := make([]a2a.Card, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.cards[name])
	}
	return out
}

// FindSkill returns the named skill of the named agent.
func (r *Registry) FindSkill(agentName, skillID string) (a2a.Skill, bool) {
	card, ok := r.cards[agentName]
	if !ok {
		return a2a.Skill{}, false
	}
	return card.Skill(skillID)
}

// HasSkill reports whether the named agent declares the skill.
func (r *Registry) HasSkill(agentName, skillID string) bool {
	_, ok := r.FindSkill(agentName, skillID)
	return ok
}

// ValidateInput checks resolved input parameters against the skill's compiled
// input schema. Skills without a schema validate trivially. Callers treat a
// validation error as advisory: stub outputs intentionally under-fill
// schemas, so the executor logs rather than fails on mismatch.
func (r *Registry) ValidateInput(agentName, skillID string, input map[string]any) error {
	sch, ok := r.inputSchemas[skillKey(agentName, skillID)]
	if !ok {
		return nil
	}
	if err := sch.Validate(normalize(input)); err != nil {
		return fmt.Errorf("input for %s: %w", skillKey(agentName, skillID), err)
	}
	return nil
}

func skillKey(agentName, skillID string) string {
	return agentName + "/" + skillID
}

// normalize converts Go-typed values into the decoded-JSON shapes the schema
// validator expects (ints become float64, typed slices become []any).
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
