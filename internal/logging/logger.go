// Package logging provides structured logging for Portside.
// It wraps Go's log/slog package to produce JSON-formatted logs written to a
// file under the state directory. The TUI owns the terminal while running,
// so nothing in this package ever writes to stdout; when no state directory
// is available logs fall back to stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the name of the log file inside the state directory.
const LogFileName = "portside.log"

// Logger provides structured logging with persistent attributes.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	file   *os.File
	mu     sync.Mutex  // Protects file operations
	attrs  []slog.Attr // Persistent attributes (user, view, request)
}

// NewLogger creates a Logger that writes JSON-formatted logs to
// {stateDir}/portside.log. If stateDir is empty, logs go to stderr.
//
// The level parameter controls which messages are logged:
//   - DEBUG: all messages
//   - INFO: info, warn and error messages
//   - WARN: warn and error messages
//   - ERROR: only error messages
func NewLogger(stateDir string, level string) (*Logger, error) {
	var writer io.Writer
	var file *os.File

	if stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}

		logPath := filepath.Join(stateDir, LogFileName)
		var err error
		file, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
	} else {
		writer = os.Stderr
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return &Logger{
		logger: slog.New(handler),
		file:   file,
		attrs:  make([]slog.Attr, 0),
	}, nil
}

// NewLoggerWithRotation is like NewLogger but wraps the log file in a
// RotatingWriter so long-lived dashboards do not grow the file unbounded.
func NewLoggerWithRotation(stateDir, level string, cfg RotationConfig) (*Logger, error) {
	if stateDir == "" || cfg.MaxSizeMB <= 0 {
		return NewLogger(stateDir, level)
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	writer, err := NewRotatingWriter(filepath.Join(stateDir, LogFileName), cfg)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return &Logger{
		logger: slog.New(handler),
		attrs:  make([]slog.Attr, 0),
	}, nil
}

// ParseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevels returns the accepted level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// WithUser returns a child Logger with the user ID added to all entries.
func (l *Logger) WithUser(userID string) *Logger {
	return l.withAttr(slog.String("user_id", userID))
}

// WithView returns a child Logger with the active view name added to all
// entries, e.g. "home", "profile", "payment".
func (l *Logger) WithView(view string) *Logger {
	return l.withAttr(slog.String("view", view))
}

// WithRequest returns a child Logger carrying the method and path of the
// backend request being performed.
func (l *Logger) WithRequest(method, path string) *Logger {
	return l.withAttr(slog.String("method", method)).withAttr(slog.String("path", path))
}

// With returns a child Logger with arbitrary alternating key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	newAttrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	newAttrs = append(newAttrs, l.attrs...)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}

	return &Logger{
		logger: l.logger,
		file:   l.file,
		attrs:  newAttrs,
	}
}

func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr

	return &Logger{
		logger: l.logger,
		file:   l.file,
		attrs:  newAttrs,
	}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)

	l.logger.Log(context.Background(), level, msg, allArgs...)
}

// Close flushes and closes the log file. When the logger writes to stderr
// this is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
	}
	return nil
}

// NopLogger returns a Logger that discards all log output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		attrs:  make([]slog.Attr, 0),
	}
}
