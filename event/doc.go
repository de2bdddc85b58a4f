// Package event provides EventSink implementations for the lifecycle events
// the orchestrator emits. The actual delivery transport (websocket, pub/sub,
// storage) is an external concern; sinks here cover the common in-process
// cases: discarding, logging, channel fan-in and multiplexing.
package event
