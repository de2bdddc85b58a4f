package core

import "fmt"

// Param is a declared task input parameter: either a literal value or a
// reference into an upstream task's result. Modeling the two cases as an
// explicit variant (instead of sniffing strings for template syntax) means a
// literal that merely looks like a placeholder is never mistaken for one.
type Param interface{ isParam() }

// Literal wraps a concrete input value that is passed through unchanged.
type Literal struct {
	Value any
}

func (Literal) isParam() {}

// Reference points at part of an upstream task's result. Path uses gjson
// syntax relative to the result document; an empty Path selects the whole
// result. A Reference may only name a task that is a (transitive) dependency
// of the referencing task; the planner guarantees this invariant, the
// resolver does not re-validate it.
type Reference struct {
	TaskID string
	Path   string
}

func (Reference) isParam() {}

// Placeholder renders the template form of the reference. The resolver
// substitutes this literal text when the referenced field is missing from the
// upstream result.
func (r Reference) Placeholder() string {
	if r.Path == "" {
		return fmt.Sprintf("{{%s.result}}", r.TaskID)
	}
	return fmt.Sprintf("{{%s.result.%s}}", r.TaskID, r.Path)
}
