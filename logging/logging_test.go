package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(lvl slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(lvl)
	h := NewHandler(&buf, &slog.HandlerOptions{Level: lv})
	h.SetColor(false)
	return slog.New(h), &buf
}

func TestModulePrefix(t *testing.T) {
	l, buf := newTestLogger(slog.LevelInfo)

	l.With(slog.String(ModuleKey, "VertexBuffer")).Info("Creating new VertexBuffer", "id", 3)

	line := buf.String()
	assert.Contains(t, line, "INFO [VertexBuffer] Creating new VertexBuffer id=3")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(slog.LevelInfo)

	l.Debug("hidden")
	Trace(l, "also hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN shown")
}

func TestTraceLevel(t *testing.T) {
	l, buf := newTestLogger(LevelTrace)

	Trace(l.With(slog.String(ModuleKey, "Texture2D")), "Binding")
	assert.Contains(t, buf.String(), "TRACE [Texture2D] Binding")
}

func TestGroupsQualifyKeys(t *testing.T) {
	l, buf := newTestLogger(slog.LevelInfo)

	l.WithGroup("fbo").Info("attached", "slot", 1)
	assert.Contains(t, buf.String(), "attached fbo.slot=1")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogBridges(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColor(false)
	defer func() {
		SetOutput(os.Stderr)
		SetColor(true)
	}()

	ErrLog.Println("Failed to create OpenGL buffer")
	assert.Contains(t, buf.String(), "ERROR Failed to create OpenGL buffer")
}
