package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
		"dpanic":  zapcore.DPanicLevel,
		"Info\n":  zapcore.InfoLevel,
		"\tdebug": zapcore.DebugLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers checks that names and fields attached to the context reach the output.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "paper-updater")
	ctx = WithKV(ctx, "version", "1.20.1")
	ctx = WithFields(ctx, map[string]any{"build": 42})

	InfoKV(ctx, "Checking registry", "project", "paper")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "paper-updater", entries[0].LoggerName)
	require.Equal(t, "Checking registry", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "1.20.1", fields["version"])
	require.EqualValues(t, 42, fields["build"])
	require.Equal(t, "paper", fields["project"])
}
