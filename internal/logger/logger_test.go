// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_RoleField verifies that every log entry contains the role.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNewConsoleLogger_WritesToFile verifies that console entries end up in
// the configured file and not on the terminal.
func TestNewConsoleLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	l := NewConsoleLogger("console", path, "info")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	l.Debug().Msg("filtered out")
	l.Info().Msg("kept")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
	assert.Equal(t, "console", lines[0]["role"])
}

func TestNewConsoleLogger_BadLevelFallsBackToDebug(t *testing.T) {
	NewConsoleLogger("console", filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewConsoleLogger_UnwritablePathDiscards(t *testing.T) {
	l := NewConsoleLogger("console", filepath.Join(t.TempDir(), "missing", "dir", "x.log"), "debug")
	require.NotNil(t, l)
	l.Info().Msg("nowhere")
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inherited-role", entry["role"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)
	l.Info().Msg("from context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-value", entry["ctx-key"])
}

func TestFromContext_NotNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
