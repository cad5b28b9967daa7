package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	l *slog.Logger
}

// New builds the application logger: a tinted slog handler writing to out,
// with debug selecting the level. This is what the CLI wires at startup.
func New(debug bool, out io.Writer) *SlogLogger {
	return &SlogLogger{l: slog.New(NewHandler(debug, out))}
}

// NewSlogLogger wraps an existing slog.Logger. Useful in tests, where a plain
// text handler over a buffer is easier to assert against.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	s.l.Log(ctx, level, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

// With returns a child logger carrying the given key–value pairs. Packages
// use it to tag their lines with a "component" attribute.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
