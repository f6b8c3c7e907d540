package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.Info("split block %s at %d", "abc", 5)

	assert.Equal(t, "2026-01-02T03:04:05.000 [INFO] test: split block abc at 5\n", buf.String())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARN]")
	assert.Contains(t, lines[1], "[ERROR]")
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.WithComponent("store").WithField("block", "b1").Info("merged")

	assert.True(t, strings.HasSuffix(buf.String(), "merged {block=b1, component=store}\n"), buf.String())
}

func TestDerivedLoggerSharesSink(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, LevelWarn)
	child := parent.WithComponent("dispatcher")

	child.Info("dropped")
	assert.Empty(t, buf.String())

	child.Warn("kept")
	parent.Warn("plain")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "kept {component=dispatcher}"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "plain"), lines[1])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithField("k", 1).Error("nothing")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))

	assert.True(t, ValidLevel("warn"))
	assert.False(t, ValidLevel("trace"))
}

func TestNopChained(t *testing.T) {
	l := Nop()
	l.Error("nothing happens")
	l.WithField("k", "v").Info("still nothing")
}
