package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_LevelsAndAttrs(t *testing.T) {
	log, buf := newBufLogger(slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "k", "v1")
	log.Info(ctx, "inf", "k", "v2")
	log.Warn(ctx, "wrn", "k", "v3")
	log.Error(ctx, "err", "k", "v4")

	out := buf.String()
	require.Contains(t, out, "msg=dbg")
	require.Contains(t, out, "k=v1")
	require.Contains(t, out, "msg=inf")
	require.Contains(t, out, "msg=wrn")
	require.Contains(t, out, "msg=err")
	require.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_WithAddsPersistentAttrs(t *testing.T) {
	log, buf := newBufLogger(slog.LevelInfo)

	child := log.With("component", "test")
	child.Info(context.Background(), "hello")

	require.Contains(t, buf.String(), "component=test")
}
