package event

import (
	"sync/atomic"

	"github.com/hupe1980/researchmesh/core"
	"github.com/hupe1980/researchmesh/logging"
)

// NoOpSink discards all events.
type NoOpSink struct{}

// Emit discards the event.
func (NoOpSink) Emit(core.Event) {}

// LoggerSink writes each event to a logging.Logger at info level (error
// events at error level).
type LoggerSink struct {
	Logger logging.Logger
}

// NewLoggerSink creates a sink backed by the given logger.
func NewLoggerSink(logger logging.Logger) *LoggerSink {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &LoggerSink{Logger: logger}
}

// Emit logs the event.
func (s *LoggerSink) Emit(ev core.Event) {
	args := []any{
		"event_id", ev.ID,
		"session_id", ev.SessionID,
	}
	if ev.AgentName != "" {
		args = append(args, "agent_name", ev.AgentName)
	}
	if ev.SkillID != "" {
		args = append(args, "skill_id", ev.SkillID)
	}
	if ev.Error != "" {
		args = append(args, "error", ev.Error)
	}
	switch ev.Type {
	case core.EventAgentError, core.EventWorkflowFailed:
		s.Logger.Error(string(ev.Type), args...)
	default:
		s.Logger.Info(string(ev.Type), args...)
	}
}

// ChannelSink forwards events into a buffered channel without ever blocking
// the scheduling loop: when the buffer is full the event is dropped and the
// drop counter incremented.
type ChannelSink struct {
	ch      chan core.Event
	dropped atomic.Int64
}

// NewChannelSink creates a sink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelSink{ch: make(chan core.Event, buffer)}
}

// Emit forwards the event, dropping it if the buffer is full.
func (s *ChannelSink) Emit(ev core.Event) {
	select {
	case s.ch <- ev:
	default:
		s.dropped.Add(1)
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan core.Event { return s.ch }

// Dropped returns how many events were discarded due to a full buffer.
func (s *ChannelSink) Dropped() int64 { return s.dropped.Load() }

// Close closes the channel. Emit must not be called afterwards.
func (s *ChannelSink) Close() { close(s.ch) }

// MultiSink fans each event out to every child sink in order.
type MultiSink []core.EventSink

// Emit delivers the event to all child sinks.
func (m MultiSink) Emit(ev core.Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
