package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"ERROR", "WARNING", "INFO", "DEBUG", "invalid", ""} {
		logger := NewLogger(level)
		require.NotNil(t, logger, "Failed for level: %s", level)
	}
}

func TestNewLogger_CaseInsensitive(t *testing.T) {
	testCases := []string{
		"error", "Error", "ERROR",
		"warning", "Warning", "WARNING",
		"info", "Info", "INFO",
		"debug", "Debug", "DEBUG",
	}

	for _, level := range testCases {
		logger := NewLogger(level)
		assert.NotNil(t, logger, "Failed for level: %s", level)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "ERROR", want: slog.LevelError},
		{input: "WARNING", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "INFO", want: slog.LevelInfo},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "debug", want: slog.LevelDebug},
		{input: "  DEBUG  ", want: slog.LevelDebug},
		{input: "INVALID", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestLevelFromVerbose(t *testing.T) {
	tests := []struct {
		verbose string
		want    string
		ok      bool
	}{
		{verbose: "0", want: "WARNING", ok: true},
		{verbose: "1", want: "INFO", ok: true},
		{verbose: "2", want: "DEBUG", ok: true},
		{verbose: " 2 ", want: "DEBUG", ok: true},
		{verbose: "", ok: false},
		{verbose: "3", ok: false},
		{verbose: "yes", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.verbose, func(t *testing.T) {
			got, ok := LevelFromVerbose(tt.verbose)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLoggerWithWriter_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "INFO")

	logger.Info("template rendered", "template", "menu", "bytes", 42)

	output := buf.String()

	assert.Contains(t, output, "time=")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "msg=\"template rendered\"")
	assert.Contains(t, output, "template=menu")
	assert.Contains(t, output, "bytes=42")
	assert.GreaterOrEqual(t, strings.Count(output, "="), 4, "Should have at least 4 key=value pairs")

	// Not JSON
	assert.NotContains(t, output, "{")
	assert.NotContains(t, output, "}")
	assert.NotContains(t, output, "\":")
}

func TestNewLoggerWithWriter_Filtering(t *testing.T) {
	testCases := []struct {
		loggerLevel string
		logLevel    slog.Level
		shouldLog   bool
	}{
		{"ERROR", slog.LevelError, true},
		{"ERROR", slog.LevelWarn, false},
		{"ERROR", slog.LevelInfo, false},
		{"ERROR", slog.LevelDebug, false},

		{"WARNING", slog.LevelError, true},
		{"WARNING", slog.LevelWarn, true},
		{"WARNING", slog.LevelInfo, false},
		{"WARNING", slog.LevelDebug, false},

		{"INFO", slog.LevelError, true},
		{"INFO", slog.LevelWarn, true},
		{"INFO", slog.LevelInfo, true},
		{"INFO", slog.LevelDebug, false},

		{"DEBUG", slog.LevelError, true},
		{"DEBUG", slog.LevelWarn, true},
		{"DEBUG", slog.LevelInfo, true},
		{"DEBUG", slog.LevelDebug, true},

		{"", slog.LevelInfo, true},
		{"", slog.LevelDebug, false},
	}

	for _, tc := range testCases {
		t.Run(tc.loggerLevel+"_logs_"+tc.logLevel.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(&buf, tc.loggerLevel)

			logger.Log(context.Background(), tc.logLevel, "test message")

			if tc.shouldLog {
				assert.NotEmpty(t, buf.String(), "Expected log output for %s logger at %s level", tc.loggerLevel, tc.logLevel)
			} else {
				assert.Empty(t, buf.String(), "Expected no log output for %s logger at %s level", tc.loggerLevel, tc.logLevel)
			}
		})
	}
}
