package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*WorkflowLogger)(nil)
	_ Logger = NoOpLogger{}
)

func newBufferedLogger(level LogLevel) (*WorkflowLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: level, Format: "json", Output: &buf, Component: "executor"})
	return l, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestWorkflowLogger_KeyValueArgs(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)
	l.Info("Task skipped", "task_id", "task_4", "dependency", "task_3")

	entry := lastEntry(t, buf)
	assert.Equal(t, "Task skipped", entry["msg"])
	assert.Equal(t, "task_4", entry["task_id"])
	assert.Equal(t, "task_3", entry["dependency"])
	assert.Equal(t, "executor", entry["component"])
}

func TestWorkflowLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelWarn)
	l.Info("suppressed")
	assert.Zero(t, buf.Len())

	l.Warn("emitted")
	assert.NotZero(t, buf.Len())
}

func TestWorkflowLogger_ContextCloning(t *testing.T) {
	base, buf := newBufferedLogger(LogLevelInfo)
	scoped := base.WithSession("sess-1").WithContext("wave", 2)

	scoped.Info("dispatching")
	entry := lastEntry(t, buf)
	assert.Equal(t, "sess-1", entry["session_id"])
	assert.Equal(t, float64(2), entry["wave"])

	// The parent logger is unaffected by derived context.
	base.Info("parent")
	entry = lastEntry(t, buf)
	assert.NotContains(t, entry, "session_id")
}

func TestWorkflowLogger_LogSkillCall(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.LogSkillCall("code_gen_agent", "generate_code", 120*time.Millisecond, true, nil)
	entry := lastEntry(t, buf)
	assert.Equal(t, "Skill call completed", entry["msg"])
	assert.Equal(t, "code_gen_agent", entry["agent_name"])
	assert.Equal(t, true, entry["success"])

	l.LogSkillCall("execution_agent", "execute_experiment", time.Second, false, errors.New("sandbox down"))
	entry = lastEntry(t, buf)
	assert.Equal(t, "Skill call failed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "sandbox down", entry["error"])
}

func TestWorkflowLogger_LogWorkflowRun(t *testing.T) {
	l, buf := newBufferedLogger(LogLevelInfo)

	l.LogWorkflowRun("sess-1", 5, 2*time.Second, "completed")
	entry := lastEntry(t, buf)
	assert.Equal(t, "Workflow run completed", entry["msg"])
	assert.Equal(t, float64(5), entry["task_count"])

	l.LogWorkflowRun("sess-2", 5, time.Second, "failed")
	entry = lastEntry(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}
