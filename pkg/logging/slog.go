package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat parses a log format string, defaulting to text
func ParseFormat(s string) Format {
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// Config holds configuration for the slog-backed logger
type Config struct {
	// Level is the minimum log level
	Level Level
	// Console receives colourised human output (nil = no console output)
	Console io.Writer
	// File is the log file path (empty = no file output)
	File string
	// Format is the file output format (json or text)
	Format Format
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// New creates a logger writing to the console, a rotating file, or both
func New(config Config) (*SlogLogger, error) {
	level := config.Level.slogLevel()

	var handlers []slog.Handler
	if config.Console != nil {
		handlers = append(handlers, tint.NewHandler(config.Console, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(config.Console),
		}))
	}

	var closer io.Closer
	if config.File != "" {
		file, err := OpenRotatingFile(config.File, config.MaxSize, config.MaxBackups)
		if err != nil {
			return nil, err
		}
		closer = file

		opts := &slog.HandlerOptions{Level: level}
		if config.Format == FormatJSON {
			handlers = append(handlers, slog.NewJSONHandler(file, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(file, opts))
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
	case 1:
		handler = handlers[0]
	default:
		handler = NewMultiHandler(handlers...)
	}

	return &SlogLogger{logger: slog.New(handler), closer: closer}, nil
}

// NewFromHandler wraps an existing slog handler
func NewFromHandler(handler slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(handler)}
}

// Slog returns the underlying slog logger
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// Debug logs a debug message
func (l *SlogLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs(fields)...)
}

// Info logs an info message
func (l *SlogLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs(fields)...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs(fields)...)
}

// Error logs an error message
func (l *SlogLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	a := attrs(fields)
	if err != nil {
		a = append(a, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(ctx, slog.LevelError, msg, a...)
}

// WithFields returns a logger with additional fields.
// The returned logger shares the output of its parent; closing it is a no-op.
func (l *SlogLogger) WithFields(fields Fields) Logger {
	a := attrs(fields)
	args := make([]any, len(a))
	for i := range a {
		args[i] = a[i]
	}
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Close flushes and closes the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// attrs converts fields to slog attributes in key order
func attrs(fields Fields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		switch v := fields[k].(type) {
		case error:
			out = append(out, slog.String(k, v.Error()))
		case fmt.Stringer:
			out = append(out, slog.String(k, v.String()))
		default:
			out = append(out, slog.Any(k, v))
		}
	}
	return out
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
