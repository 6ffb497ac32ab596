package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies level names and the fallback for unknown ones.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	got, ok := ParseLogLevel("fatal")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, got)
}

// TestContext_NameAndKV checks names and fields travel with the context.
func TestContext_NameAndKV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewTo(zapcore.AddSync(&buf), zapcore.DebugLevel))
	ctx = WithName(ctx, "guard")
	ctx = WithKV(ctx, "device", "porch")

	InfoKV(ctx, "State changed", "to", "armed")
	Warn(ctx, "tick 3")

	out := buf.String()
	require.Contains(t, out, "guard")
	require.Contains(t, out, "State changed")
	require.Contains(t, out, `"device": "porch"`)
	require.Contains(t, out, `"to": "armed"`)
	require.Contains(t, out, "tick 3")
}

// TestRestrict verifies a restricted context drops entries below the level.
func TestRestrict(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewTo(zapcore.AddSync(&buf), zapcore.DebugLevel))
	ctx = Restrict(ctx, zapcore.WarnLevel)

	Info(ctx, "hidden")
	Warn(ctx, "shown")
	ErrorKV(WithKV(ctx, "k", 1), "also shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "also shown")
}

// TestFromContext_Fallback ensures the global logger is used when none is attached.
func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))
	require.Same(t, global, FromContext(nil)) //nolint:staticcheck // nil context is handled.
}
