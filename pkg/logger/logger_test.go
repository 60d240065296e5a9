package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelDebug, Format: FormatJSON}).
		WithComponent("progression")

	log.Info("task completed", TaskID("breathe_box"), Amount(40))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "task completed", entry["message"])
	assert.Equal(t, "progression", entry["component"])
	assert.Equal(t, "breathe_box", entry["task_id"])
	assert.EqualValues(t, 40, entry["amount"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Debug("hidden")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  Level
		known bool
	}{
		{"debug", LevelDebug, true},
		{" WARNING ", LevelWarn, true},
		{"", LevelInfo, true},
		{"off", LevelDisabled, true},
		{"verbose", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.known, ok, tt.in)
	}
}

func TestLogger_WithDoesNotLeakToParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Output: &buf, Level: LevelInfo})
	child := parent.With(Operation("CompleteTask"), Bool("bonus", true))

	child.Info("child")
	parent.Info("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "CompleteTask", first["operation"])
	assert.Equal(t, true, first["bonus"])
	assert.NotContains(t, second, "operation")
}

func TestLogger_ErrField(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf, Level: LevelError}).Error("write failed", Err(errors.New("disk full")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "disk full", entry["error"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithComponent("x").Error("ignored", Err(nil))
	})
}
