package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo}, // Default for unknown
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		" info ":  LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}

	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func TestInitText(t *testing.T) {
	var buf bytes.Buffer

	Init(LevelInfo, FormatText, &buf)

	Warn("test-subsystem", "test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Error("Expected log message to appear in CLI output")
	}

	if !strings.Contains(output, "test-subsystem") {
		t.Error("Expected subsystem to appear in CLI output")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	Init(LevelWarn, FormatText, &buf)

	Debug("test", "debug message")
	Warn("test", "warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at WARN level")
	}

	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should appear at WARN level")
	}
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer

	Init(LevelDebug, FormatText, &buf)

	Error("Session", errors.New("refresh rejected"), "teardown after %d attempts", 1)

	output := buf.String()
	if !strings.Contains(output, "refresh rejected") {
		t.Errorf("Expected error cause in output, got %q", output)
	}
	if !strings.Contains(output, "teardown after 1 attempts") {
		t.Errorf("Expected formatted message in output, got %q", output)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	Init(LevelInfo, FormatJSON, &buf)
	Warn("Config", "falling back to defaults")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["subsystem"] != "Config" {
		t.Errorf("Expected subsystem Config, got %v", entry["subsystem"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("Expected level WARN, got %v", entry["level"])
	}
}

func TestLoggerCarriesSubsystem(t *testing.T) {
	var buf bytes.Buffer

	Init(LevelDebug, FormatText, &buf)
	Logger("Refresh").Debug("refresh started")

	output := buf.String()
	if !strings.Contains(output, "subsystem=Refresh") {
		t.Errorf("Expected subsystem attribute, got %q", output)
	}
}
