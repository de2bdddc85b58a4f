package core

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates the lifecycle states of a session.
type SessionStatus string

const (
	// SessionActive is the initial status; workflow runs may execute.
	SessionActive SessionStatus = "active"
	// SessionCompleted means the last run finished with every task completed.
	SessionCompleted SessionStatus = "completed"
	// SessionFailed means a run ended with failed or skipped tasks. Terminal.
	SessionFailed SessionStatus = "failed"
	// SessionArchived is the administrative terminal status.
	SessionArchived SessionStatus = "archived"
)

var (
	// ErrSessionTerminal is returned when an operation targets a session whose
	// status permits no further task execution (failed or archived).
	ErrSessionTerminal = fmt.Errorf("session is in a terminal status")

	// ErrInvalidTransition is returned for status changes outside the allowed
	// transition table.
	ErrInvalidTransition = fmt.Errorf("invalid session status transition")

	// ErrSessionNotFound is returned by stores when no session has the given id.
	ErrSessionNotFound = fmt.Errorf("session not found")
)

// transitions is the allowed status transition table. Transitions are
// monotonic except that a completed session may be re-activated by a new run.
var transitions = map[SessionStatus][]SessionStatus{
	SessionActive:    {SessionCompleted, SessionFailed, SessionArchived},
	SessionCompleted: {SessionActive, SessionArchived},
	SessionFailed:    {},
	SessionArchived:  {},
}

// Session is one isolated run of the research workflow: its own agent roster,
// accumulated per-task results and status. It is safe for concurrent access.
//
// Contract:
//   - Mutations update the Updated timestamp
//   - Results and Roster accessors return defensive copies
//   - Clone performs deep copies of maps/slices for safe divergence
type Session struct {
	ID            string                     `json:"id"`
	ProjectID     string                     `json:"project_id"`
	Name          string                     `json:"name"`
	Description   string                     `json:"description,omitempty"`
	Status        SessionStatus              `json:"status"`
	InitialPrompt string                     `json:"initial_prompt,omitempty"`
	Roster        []string                   `json:"roster"`
	Results       map[string]json.RawMessage `json:"results"`
	Metadata      map[string]string          `json:"metadata"`
	Created       time.Time                  `json:"created"`
	Updated       time.Time                  `json:"updated"`
	ArchivedAt    *time.Time                 `json:"archived_at,omitempty"`
	mu            sync.RWMutex
}

// NewSession creates an active session for the given project with the
// provided enabled-agent roster.
func NewSession(projectID, name string, roster []string) *Session {
	now := time.Now().UTC()
	r := make([]string, len(roster))
	copy(r, roster)
	return &Session{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		Status:    SessionActive,
		Roster:    r,
		Results:   map[string]json.RawMessage{},
		Metadata:  map[string]string{},
		Created:   now,
		Updated:   now,
	}
}

// SetStatus transitions the session status, enforcing the transition table.
func (s *Session) SetStatus(next SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, allowed := range transitions[s.Status] {
		if allowed == next {
			s.Status = next
			s.Updated = time.Now().UTC()
			if next == SessionArchived {
				now := s.Updated
				s.ArchivedAt = &now
			}
			return nil
		}
	}
	return fmt.Errorf("session %s: %s -> %s: %w", s.ID, s.Status, next, ErrInvalidTransition)
}

// CurrentStatus returns the status under the read lock.
func (s *Session) CurrentStatus() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// EnsureRunnable rejects execution against failed or archived sessions.
// A completed session may host a further run.
func (s *Session) EnsureRunnable() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Status == SessionFailed || s.Status == SessionArchived {
		return fmt.Errorf("session %s is %s: %w", s.ID, s.Status, ErrSessionTerminal)
	}
	return nil
}

// HasAgent reports whether the named agent is on the enabled roster.
func (s *Session) HasAgent(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.Roster {
		if a == name {
			return true
		}
	}
	return false
}

// RosterCopy returns a copy of the enabled-agent roster.
func (s *Session) RosterCopy() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := make([]string, len(s.Roster))
	copy(r, s.Roster)
	return r
}

// StoreResult records a task result against the session.
func (s *Session) StoreResult(taskID string, result json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(json.RawMessage, len(result))
	copy(cp, result)
	s.Results[taskID] = cp
	s.Updated = time.Now().UTC()
}

// Result returns the stored result for a task id, if any.
func (s *Session) Result(taskID string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.Results[taskID]
	return r, ok
}

// ResultMap returns a copy of all accumulated task results.
func (s *Session) ResultMap() map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(s.Results))
	for k, v := range s.Results {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// SetInitialPrompt records the free-text research request of the current run.
func (s *Session) SetInitialPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InitialPrompt = prompt
	s.Updated = time.Now().UTC()
}

// SetMetadata sets a metadata key updating the Updated timestamp.
func (s *Session) SetMetadata(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Metadata[key] = value
	s.Updated = time.Now().UTC()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:            s.ID,
		ProjectID:     s.ProjectID,
		Name:          s.Name,
		Description:   s.Description,
		Status:        s.Status,
		InitialPrompt: s.InitialPrompt,
		Roster:        make([]string, len(s.Roster)),
		Results:       make(map[string]json.RawMessage, len(s.Results)),
		Metadata:      make(map[string]string, len(s.Metadata)),
		Created:       s.Created,
		Updated:       s.Updated,
	}
	copy(clone.Roster, s.Roster)
	for k, v := range s.Results {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		clone.Results[k] = cp
	}
	for k, v := range s.Metadata {
		clone.Metadata[k] = v
	}
	if s.ArchivedAt != nil {
		at := *s.ArchivedAt
		clone.ArchivedAt = &at
	}
	return clone
}

// SessionStore persists sessions and their accumulated results.
type SessionStore interface {
	Create(sess *Session) error
	Get(id string) (*Session, error)
	Save(sess *Session) error
}
