package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// StderrPath can be used as Config.FilePath to write logs to stderr instead of a file.  Used by the serve command
// where there is no TUI competing for the terminal.
const StderrPath = "-"

// Logger writes hypelist's structured JSON logs
type Logger struct {
	logger       *slog.Logger
	closer       io.Closer
	traceEnabled bool
}

// Config contains logging information used to set up the logging framework
type Config struct {
	// Log Level.  One of: trace, debug, info, warn, error
	Level string
	// Path to the file to log into, or StderrPath
	FilePath string
}

func New(config Config) (*Logger, error) {
	if config.FilePath == StderrPath {
		return NewWithWriter(os.Stderr, config.Level), nil
	}

	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewWithWriter(file, config.Level)
	logger.closer = file
	return logger, nil
}

// NewWithWriter builds a logger over an arbitrary writer.  The writer is not closed by Close.
func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})

	return &Logger{
		logger:       slog.New(handler),
		traceEnabled: strings.EqualFold(level, "trace"),
	}
}

// With returns a logger that adds args to every record, e.g. the backend a repository talks to
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		logger:       l.logger.With(args...),
		traceEnabled: l.traceEnabled,
	}
}

// Close the log file, if there is one
func (l *Logger) Close() {
	if l.closer == nil {
		return
	}
	if err := l.closer.Close(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error closing logger: %v\n", err)
	}
}

// Trace logs at debug level when trace logging is enabled
func (l *Logger) Trace(msg string, args ...any) {
	if l.traceEnabled {
		l.logger.Debug("TRACE: "+msg, args...)
	}
}

// Debug logs a message a debug Level
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs a message at info Level
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a message at warn Level
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs a message at error Level.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// ValidLevel reports whether lvl is a level this package understands
func ValidLevel(lvl string) bool {
	switch strings.ToLower(lvl) {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// parseLogLevel is a helper to convert a string log Level into the slog version.  Defaults to info if a matching log
// Level cannot be found.
func parseLogLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug", "trace":
		// Trace is filtered by this package, slog only sees debug
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
