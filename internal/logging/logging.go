package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var (
	mu   sync.RWMutex
	base *slog.Logger
)

type Options struct {
	Component string
	Level     string
	// FilePath enables a rotating log file next to stdout.
	FilePath string
}

// Init builds the process logger and installs it as the global one.
func Init(opts Options) *slog.Logger {
	var w io.Writer = os.Stdout
	if opts.FilePath != "" {
		_ = os.MkdirAll(filepath.Dir(opts.FilePath), 0o755)
		rot := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w = io.MultiWriter(os.Stdout, rot)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	l := slog.New(h)
	if opts.Component != "" {
		l = l.With("component", opts.Component)
	}

	mu.Lock()
	base = l
	mu.Unlock()
	return l
}

// Base returns the global logger, or slog.Default when Init was never called.
func Base() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if base == nil {
		return slog.Default()
	}
	return base
}

// New returns a child logger of the global one.
func New(component string) *slog.Logger {
	return Base().With("component", component)
}

func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx fetches a logger from ctx or falls back to the global one.
func FromCtx(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
