// Package session provides SessionStore implementations. Durable persistence
// of sessions is an external collaborator in production deployments; the
// in-memory store here serves tests, examples and single-process prototypes.
package session
