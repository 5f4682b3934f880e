// Package logging provides structured JSON logging for Ideaforge.
// A Logger wraps log/slog and hands out child loggers scoped to a
// session, agent, or workflow stage, so every entry an agent writes
// carries the context needed to reconstruct a run afterwards.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level names accepted by NewLogger and ParseLevel.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger writes JSON log entries. Child loggers created with the With*
// methods share the parent's output and level; closing any of them
// closes the shared log file. Safe for concurrent use.
type Logger struct {
	slogger *slog.Logger
	file    *os.File
	mu      sync.Mutex
}

// NewLogger opens a JSON logger writing to logFile, creating the parent
// directory if needed. An empty logFile logs to stderr. The level string
// is one of the Level constants (case-insensitive); anything else falls
// back to INFO.
func NewLogger(logFile string, level string) (*Logger, error) {
	var writer io.Writer = os.Stderr
	var file *os.File

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writer = f
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: slogLevel(level),
	})

	return &Logger{
		slogger: slog.New(handler),
		file:    file,
	}, nil
}

// NopLogger returns a Logger that discards everything. Used in tests and
// when logging is disabled.
func NopLogger() *Logger {
	return &Logger{slogger: slog.New(slog.DiscardHandler)}
}

// WithSession returns a child logger tagging every entry with the session ID.
func (l *Logger) WithSession(sessionID string) *Logger {
	return l.With("session_id", sessionID)
}

// WithAgent returns a child logger tagging every entry with the agent ID.
func (l *Logger) WithAgent(agentID string) *Logger {
	return l.With("agent_id", agentID)
}

// WithStage returns a child logger tagging every entry with the workflow
// stage (brainstorm, vision, prd, architecture, research).
func (l *Logger) WithStage(stage string) *Logger {
	return l.With("stage", stage)
}

// With returns a child logger carrying the given key-value pairs on every
// entry. Pairs whose key is not a string are dropped.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	pairs := make([]any, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := args[i].(string); ok {
			pairs = append(pairs, args[i], args[i+1])
		}
	}
	if len(pairs) == 0 {
		return l
	}

	return &Logger{
		slogger: l.slogger.With(pairs...),
		file:    l.file,
	}
}

// Debug logs at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.slogger.Debug(msg, args...)
}

// Info logs at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.slogger.Info(msg, args...)
}

// Warn logs at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.slogger.Warn(msg, args...)
}

// Error logs at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.slogger.Error(msg, args...)
}

// Close syncs and closes the log file. A no-op for stderr loggers and on
// repeated calls.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.file = nil
	return nil
}

// ParseLevel normalizes a level string to one of the Level constants,
// defaulting to LevelInfo.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return strings.ToUpper(level)
	default:
		return LevelInfo
	}
}

// ValidLevels returns the accepted log level names.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// slogLevel maps a level string onto the slog level used for filtering.
func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
