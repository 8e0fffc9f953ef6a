package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFromCtxFallsBackToBase(t *testing.T) {
	l := Init(Options{Component: "test"})
	assert.Same(t, l, FromCtx(context.Background()))

	child := l.With("k", "v")
	ctx := WithCtx(context.Background(), child)
	assert.Same(t, child, FromCtx(ctx))
}

func TestInitWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l := Init(Options{Component: "test", FilePath: path})
	l.Info("hello")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"component":"test"`)
}
