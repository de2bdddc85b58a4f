// Package core contains the shared data model of ResearchMesh: tasks and
// their input parameters, research sessions, lifecycle events and the store
// interfaces implemented by the session, cell and memory packages. Higher
// level packages (orchestrator, a2a, registry) depend on core; core depends
// on nothing but the standard library and uuid.
package core
