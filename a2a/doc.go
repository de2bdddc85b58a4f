// Package a2a implements the agent protocol boundary: static agent cards for
// discovery and a capability-typed client for invoking one named agent's
// skill. A client is backed by a remote endpoint, a locally bound model, or a
// deterministic stub; which mode is active is an explicit capability flag so
// callers and tests never have to infer it from output content.
package a2a
