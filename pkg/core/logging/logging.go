// Package logging provides structured logging setup using Go's standard library log/slog package.
//
// The logging package configures slog with logfmt format (human-readable key=value pairs)
// and maps string log levels (ERROR, WARNING, INFO, DEBUG) to slog levels.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a new structured logger writing to stdout with the specified log level.
// Supported levels (case-insensitive): ERROR, WARNING, INFO, DEBUG.
// Invalid levels default to INFO. Uses logfmt format for output.
func NewLogger(level string) *slog.Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a logfmt logger writing to w.
// The CLI logs to stderr so rendered output on stdout stays clean.
func NewLoggerWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})

	return slog.New(handler)
}

// LevelFromVerbose maps the VERBOSE environment variable to a log level name.
// 0 = WARNING, 1 = INFO, 2 = DEBUG. Returns false for any other value,
// so the configured level is kept.
func LevelFromVerbose(verbose string) (string, bool) {
	switch strings.TrimSpace(verbose) {
	case "0":
		return "WARNING", true
	case "1":
		return "INFO", true
	case "2":
		return "DEBUG", true
	default:
		return "", false
	}
}

// parseLogLevel converts string log level to slog.Level.
// Returns slog.LevelInfo for invalid or empty levels.
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR":
		return slog.LevelError
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "INFO":
		return slog.LevelInfo
	case "DEBUG":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
