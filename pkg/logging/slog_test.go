package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newFileLogger(t *testing.T, format Format, level Level) (*SlogLogger, string) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	logPath := filepath.Join(tempDir, "test.log")
	logger, err := New(Config{File: logPath, Format: format, Level: level})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return logger, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestNew_CreatesDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "nested", "dir", "test.log")
	logger, err := New(Config{File: logPath, Format: FormatText, Level: InfoLevel})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestSlogLogger_LogLevels(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatText, InfoLevel)
	ctx := context.Background()

	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", nil, nil)
	logger.Close()

	logContent := readLog(t, logPath)

	if strings.Contains(logContent, "debug message") {
		t.Error("Debug message should be filtered at INFO level")
	}
	for _, msg := range []string{"info message", "warn message", "error message"} {
		if !strings.Contains(logContent, msg) {
			t.Errorf("%q should be present", msg)
		}
	}
}

func TestSlogLogger_DebugLevel(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatText, DebugLevel)
	logger.Debug(context.Background(), "debug message", nil)
	logger.Close()

	if !strings.Contains(readLog(t, logPath), "debug message") {
		t.Error("Debug message should be present at DEBUG level")
	}
}

func TestSlogLogger_TextFormat(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatText, InfoLevel)
	logger.Info(context.Background(), "test message", Fields{"key": "value", "count": 42})
	logger.Close()

	logContent := readLog(t, logPath)
	for _, want := range []string{"level=INFO", `msg="test message"`, "key=value", "count=42"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("Log should contain %q, got %q", want, logContent)
		}
	}
}

func TestSlogLogger_JSONFormat(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatJSON, InfoLevel)
	logger.Info(context.Background(), "test message", Fields{"key": "value", "elapsed": 150 * time.Millisecond})
	logger.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(readLog(t, logPath)), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want 'test message'", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want 'value'", entry["key"])
	}
	if entry["elapsed"] != "150ms" {
		t.Errorf("elapsed = %v, want 150ms", entry["elapsed"])
	}
	if entry["time"] == nil {
		t.Error("time should be present")
	}
}

func TestSlogLogger_ErrorWithErr(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatJSON, InfoLevel)
	logger.Error(context.Background(), "operation failed", errors.New("something went wrong"), Fields{"operation": "test"})
	logger.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(readLog(t, logPath)), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["error"] != "something went wrong" {
		t.Errorf("error = %v, want 'something went wrong'", entry["error"])
	}
	if entry["operation"] != "test" {
		t.Errorf("operation = %v, want 'test'", entry["operation"])
	}
}

func TestSlogLogger_WithFields(t *testing.T) {
	logger, logPath := newFileLogger(t, FormatJSON, InfoLevel)

	scoped := logger.WithFields(Fields{"component": "transfer"})
	scoped.Info(context.Background(), "test", Fields{"action": "download"})
	if err := scoped.Close(); err != nil {
		t.Errorf("scoped Close() error = %v", err)
	}
	logger.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(readLog(t, logPath)), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["component"] != "transfer" {
		t.Errorf("component = %v, want 'transfer'", entry["component"])
	}
	if entry["action"] != "download" {
		t.Errorf("action = %v, want 'download'", entry["action"])
	}
}

func TestSlogLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Console: &buf, Level: WarnLevel})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info(context.Background(), "hidden", nil)
	logger.Warn(context.Background(), "strategies exhausted", Fields{"path": "/DCIM/a.jpg"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info should be filtered at WARN level")
	}
	if !strings.Contains(out, "strategies exhausted") || !strings.Contains(out, "/DCIM/a.jpg") {
		t.Errorf("console output missing message or field: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal console output should not be colourised")
	}
}

func TestSlogLogger_ConsoleAndFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	var buf bytes.Buffer
	logPath := filepath.Join(tempDir, "both.log")
	logger, err := New(Config{Console: &buf, File: logPath, Format: FormatText, Level: InfoLevel})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info(context.Background(), "fan out", nil)
	logger.Close()

	if !strings.Contains(buf.String(), "fan out") {
		t.Error("console should receive the record")
	}
	if !strings.Contains(readLog(t, logPath), "fan out") {
		t.Error("file should receive the record")
	}
}

func TestNewFromHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromHandler(slog.NewTextHandler(&buf, nil))
	logger.Info(context.Background(), "wrapped", nil)
	if !strings.Contains(buf.String(), "wrapped") {
		t.Errorf("output = %q", buf.String())
	}
	if logger.Slog() == nil {
		t.Error("Slog() should not be nil")
	}
}

func TestRotatingFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "test.log")
	logger, err := New(Config{
		File:       logPath,
		Format:     FormatText,
		Level:      InfoLevel,
		MaxSize:    100,
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		logger.Info(ctx, "This is a test message that is long enough to trigger rotation eventually", nil)
	}
	logger.Close()

	if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
		t.Error("Backup file .1 should exist after rotation")
	}
	if _, err := os.Stat(logPath + ".2"); os.IsNotExist(err) {
		t.Error("Backup file .2 should exist after rotation")
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("Backup file .3 should have been removed")
	}
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Main log file should still exist")
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	f, err := OpenRotatingFile(filepath.Join(tempDir, "x.log"), 0, 0)
	if err != nil {
		t.Fatalf("OpenRotatingFile() error = %v", err)
	}
	f.Close()
	if _, err := f.Write([]byte("late")); err == nil {
		t.Error("Write() after Close() should fail")
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil, nil)

	if logger.WithFields(Fields{"key": "value"}) == nil {
		t.Error("WithFields should return a logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseLevel(tt.input); result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := LevelString(tt.level); result != tt.expected {
				t.Errorf("LevelString(%v) = %q, want %q", tt.level, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("ParseFormat(json) should be FormatJSON")
	}
	if ParseFormat("xml") != FormatText {
		t.Error("unknown formats should fall back to text")
	}
}
