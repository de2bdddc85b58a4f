package core

import (
	"time"

	"github.com/google/uuid"
)

// CellType categorizes the content of a derived artifact.
type CellType string

const (
	// CellMarkdown holds narrative agent output.
	CellMarkdown CellType = "markdown"
	// CellCode holds generated source code.
	CellCode CellType = "code"
)

// Cell is a human-readable content artifact derived from an agent's output.
// Cells are appended, never mutated in place, and belong to the session, not
// the task that produced them.
type Cell struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Type      CellType  `json:"type"`
	Content   string    `json:"content"`
	AgentName string    `json:"agent_name"`
	SkillID   string    `json:"skill_id"`
	Position  int       `json:"position"`
	Created   time.Time `json:"created"`
}

// NewCell creates a cell attributed to the originating agent and skill.
func NewCell(sessionID string, t CellType, content, agentName, skillID string) Cell {
	return Cell{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Type:      t,
		Content:   content,
		AgentName: agentName,
		SkillID:   skillID,
		Created:   time.Now().UTC(),
	}
}

// CellStore persists derived content artifacts per session, append-only.
type CellStore interface {
	Append(cell Cell) (Cell, error)
	List(sessionID string) ([]Cell, error)
	Get(sessionID, cellID string) (Cell, error)
}
