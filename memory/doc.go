// Package memory provides MemoryStore implementations for session scoped
// short-term memory records. The in-memory store uses a linear substring scan
// for search; swap in a semantic index for production retrieval.
package memory
