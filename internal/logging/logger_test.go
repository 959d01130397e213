package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Close()

	logger.Info("dashboard opened", "view", "home")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["msg"] != "dashboard opened" {
		t.Errorf("msg = %v, want %q", entry["msg"], "dashboard opened")
	}
	if entry["view"] != "home" {
		t.Errorf("view = %v, want %q", entry["view"], "home")
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Close()

	logger.Debug("should be dropped")
	logger.Info("should be dropped too")
	logger.Warn("should appear")

	data, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Errorf("low-level entries leaked into output: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("WARN entry missing from output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChildLoggerAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Close()

	child := logger.WithUser("u-42").WithView("payment").WithRequest("POST", "/api/payments/create-payment-intent")
	child.Info("creating intent")

	// Parent must not carry the child's attributes.
	logger.Info("plain entry")

	data, _ := os.ReadFile(filepath.Join(dir, LogFileName))
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("parsing first line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("parsing second line: %v", err)
	}

	if first["user_id"] != "u-42" || first["view"] != "payment" || first["method"] != "POST" {
		t.Errorf("child entry missing attributes: %v", first)
	}
	if _, ok := second["user_id"]; ok {
		t.Errorf("parent entry should not carry child attributes: %v", second)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic and must be closeable.
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStderrFallback(t *testing.T) {
	logger, err := NewLogger("", LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger(\"\") error = %v", err)
	}
	if logger.file != nil {
		t.Error("logger without a state dir should not open a file")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
