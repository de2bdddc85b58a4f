package core

import (
	"time"

	"github.com/google/uuid"
)

// Memory record kinds.
const (
	// MemoryKindResult captures an agent execution outcome.
	MemoryKindResult = "result"
	// MemoryKindConversation captures conversational context.
	MemoryKindConversation = "conversation"
	// MemoryKindArtifact captures a pointer to a derived artifact.
	MemoryKindArtifact = "artifact"
)

// MemoryRecord is a short-term memory entry scoped to a session, written as a
// side effect of task completion and retrievable for later summarization.
type MemoryRecord struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Kind      string         `json:"kind"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Created   time.Time      `json:"created"`
}

// NewMemoryRecord creates a memory record for the session.
func NewMemoryRecord(sessionID, kind, content string, metadata map[string]any) MemoryRecord {
	return MemoryRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Content:   content,
		Metadata:  metadata,
		Created:   time.Now().UTC(),
	}
}

// MemoryStore persists and retrieves session-scoped memory records.
type MemoryStore interface {
	Store(rec MemoryRecord) error
	Search(sessionID, query string, limit int) ([]MemoryRecord, error)
	List(sessionID string) ([]MemoryRecord, error)
	Delete(sessionID, memoryID string) error
}
