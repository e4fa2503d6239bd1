package log

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "abc")
	if got := RunID(ctx); got != "abc" {
		t.Errorf("RunID = %q, want abc", got)
	}
	if got := RunID(context.Background()); got != "" {
		t.Errorf("RunID on empty ctx = %q", got)
	}

	// Must not panic with or without a run ID.
	l := NewNop()
	l.Infof(ctx, "hello %s", "world")
	l.Warn(context.Background(), "plain")
}
