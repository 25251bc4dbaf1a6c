package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestCartLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf, Component: "cart"})

	l.WithCart("_cart_1").WithContext("bucket", "_cart").Info("item added", "item_id", "sku-1", "items", 2)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "item added", lines[0]["msg"])
	assert.Equal(t, "cart", lines[0]["component"])
	assert.Equal(t, "_cart_1", lines[0]["cart_id"])
	assert.Equal(t, "_cart", lines[0]["bucket"])
	assert.Equal(t, "sku-1", lines[0]["item_id"])
	assert.Equal(t, float64(2), lines[0]["items"])
}

func TestCartLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestCartLogger_WithIsolation(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LogLevelInfo, Output: &buf})
	_ = base.WithContext("k", "v").WithComponent("redis")

	base.Info("plain")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "k")
	assert.NotContains(t, lines[0], "component")
}

func TestCartLogger_StartTimer(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Output: &buf})

	l.StartTimer("save")(nil)
	l.StartTimer("load")(errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "save", lines[0]["operation"])
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, LogLevelError, ParseLevel("ERROR"))
	assert.Equal(t, LogLevelInfo, ParseLevel("verbose"))
	assert.Equal(t, "WARN", LogLevelWarn.String())
}

func TestOrNoOp(t *testing.T) {
	assert.IsType(t, NoOpLogger{}, OrNoOp(nil))
	l := NewDefaultSlogLogger()
	assert.Same(t, l, OrNoOp(l))
}

func TestStartTimer_AttachesArgs(t *testing.T) {
	var buf bytes.Buffer
	var l Logger = NewLogger(&LoggerConfig{Level: LogLevelDebug, Output: &buf})

	StartTimer(l, "redis HGET", "key", "sessioncart:s1:_cart")(nil)
	StartTimer(l, "redis HSET", "key", "sessioncart:s1:_cart")(errors.New("down"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "redis HGET", lines[0]["operation"])
	assert.Equal(t, "sessioncart:s1:_cart", lines[0]["key"])
	assert.Contains(t, lines[0], "duration")
	assert.Equal(t, "ERROR", lines[1]["level"])
	assert.Equal(t, "down", lines[1]["error"])
	assert.Equal(t, "sessioncart:s1:_cart", lines[1]["key"])

	assert.NotPanics(t, func() { StartTimer(nil, "noop")(nil) })
}
