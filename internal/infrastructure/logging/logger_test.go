package logging

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"waitingtodo/internal/testutils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Mock ShellError for testing
type mockShellError struct {
	message   string
	code      string
	retryable bool
	context   map[string]string
	timestamp time.Time
}

func (m *mockShellError) Error() string                 { return m.message }
func (m *mockShellError) GetCode() string               { return m.code }
func (m *mockShellError) IsRetryable() bool             { return m.retryable }
func (m *mockShellError) GetContext() map[string]string { return m.context }
func (m *mockShellError) GetTimestamp() time.Time       { return m.timestamp }

func newObservedLogger(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapLogger(zap.New(core)), logs
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger() returned nil")
	}
	if _, ok := logger.(*ZapLogger); !ok {
		t.Errorf("NewDefaultLogger() returned %T, expected *ZapLogger", logger)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(Options{Level: "chatty"}); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tt.in, err)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestZapLogger_LogLevels(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.DebugLevel)

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		level   zapcore.Level
	}{
		{"Debug", logger.Debug, zapcore.DebugLevel},
		{"Info", logger.Info, zapcore.InfoLevel},
		{"Warn", logger.Warn, zapcore.WarnLevel},
		{"Error", logger.Error, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.TakeAll()
			tt.logFunc(tt.name+" message", "key", "value")

			entries := logs.TakeAll()
			if len(entries) != 1 {
				t.Fatalf("Expected 1 entry, got %d", len(entries))
			}
			entry := entries[0]
			if entry.Level != tt.level {
				t.Errorf("Level = %v, want %v", entry.Level, tt.level)
			}
			if entry.Message != tt.name+" message" {
				t.Errorf("Message = %q", entry.Message)
			}
			if entry.ContextMap()["key"] != "value" {
				t.Errorf("Expected key=value field, got %v", entry.ContextMap())
			}
		})
	}
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	if logs.Len() != 1 {
		t.Errorf("Expected only the warn entry, got %d entries", logs.Len())
	}
}

func TestNormalizeFields(t *testing.T) {
	tests := []struct {
		name     string
		fields   []interface{}
		expected map[string]interface{}
	}{
		{
			name:     "well formed",
			fields:   []interface{}{"a", 1, "b", "two"},
			expected: map[string]interface{}{"a": 1, "b": "two"},
		},
		{
			name:     "odd number of fields",
			fields:   []interface{}{"a", 1, "dangling"},
			expected: map[string]interface{}{"a": 1, "field_1": "dangling"},
		},
		{
			name:     "non-string key",
			fields:   []interface{}{42, "answer"},
			expected: map[string]interface{}{"field_0": 42, "field_0_value": "answer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutils.FieldsToMap(t, normalizeFields(tt.fields))
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d fields, got %v", len(tt.expected), got)
			}
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("Field %q: expected %v, got %v", k, v, got[k])
				}
			}
		})
	}
}

func TestWith_ZapLogger(t *testing.T) {
	logger, logs := newObservedLogger(zapcore.InfoLevel)

	scoped := With(logger, "session_id", "abc")
	scoped.Info("window hidden", "visibility", "hidden")

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["session_id"] != "abc" || ctx["visibility"] != "hidden" {
		t.Errorf("Unexpected fields: %v", ctx)
	}
}

func TestWith_OtherLogger(t *testing.T) {
	rec := &testutils.RecordingLogger{}

	With(rec, "session_id", "abc").Warn("tray click", "state", "visible")

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Level != "WARN" {
		t.Fatalf("Unexpected entries: %+v", entries)
	}
	fields := testutils.FieldsToMap(t, entries[0].Fields)
	if fields["session_id"] != "abc" || fields["state"] != "visible" {
		t.Errorf("Unexpected fields: %v", fields)
	}
}

func TestLogShellError_WithShellError(t *testing.T) {
	rec := &testutils.RecordingLogger{}

	shellErr := &mockShellError{
		message:   "icon missing",
		code:      "RESOURCE",
		retryable: false,
		context:   map[string]string{"resource": "icon"},
		timestamp: time.Now(),
	}

	LogShellError(rec, shellErr, "resolve_resources", map[string]interface{}{"attempt": 1})

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 error entry, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Message, "Shell error: icon missing") {
		t.Errorf("Unexpected message %q", entries[0].Message)
	}

	fields := testutils.FieldsToMap(t, entries[0].Fields)
	expected := map[string]interface{}{
		"operation":  "resolve_resources",
		"error_code": "RESOURCE",
		"retryable":  false,
		"resource":   "icon",
		"attempt":    1,
	}
	for key, want := range expected {
		if got, ok := fields[key]; !ok {
			t.Errorf("Expected field %q not found", key)
		} else if got != want {
			t.Errorf("Field %q: expected %v, got %v", key, want, got)
		}
	}
}

func TestLogShellError_WrappedShellError(t *testing.T) {
	rec := &testutils.RecordingLogger{}

	shellErr := &mockShellError{
		message: "relaunch failed",
		code:    "RELAUNCH",
		context: map[string]string{"executable": "/opt/waitingtodo/waitingtodo"},
	}
	LogShellError(rec, fmt.Errorf("restart: %w", shellErr), "restart", nil)

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "Shell error: restart: relaunch failed" {
		t.Errorf("Unexpected message %q", entries[0].Message)
	}
	fields := testutils.FieldsToMap(t, entries[0].Fields)
	if fields["error_code"] != "RELAUNCH" || fields["executable"] != "/opt/waitingtodo/waitingtodo" {
		t.Errorf("Wrapped error lost its classification: %v", fields)
	}
}

func TestLogShellError_WithRegularError(t *testing.T) {
	rec := &testutils.RecordingLogger{}

	LogShellError(rec, errors.New("regular error"), "relaunch", nil)

	entries := rec.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Message, "Unexpected error: regular error") {
		t.Errorf("Unexpected message %q", entries[0].Message)
	}
	fields := testutils.FieldsToMap(t, entries[0].Fields)
	if fields["error_type"] != "*errors.errorString" {
		t.Errorf("Unexpected error_type %v", fields["error_type"])
	}
}

func TestLogShellError_NilError(t *testing.T) {
	rec := &testutils.RecordingLogger{}
	LogShellError(rec, nil, "noop", nil)
	if len(rec.Entries()) != 0 {
		t.Error("Expected nothing logged for nil error")
	}
}

func TestLogOperation(t *testing.T) {
	rec := &testutils.RecordingLogger{}

	LogOperation(rec, "create_window", 1500*time.Millisecond, map[string]interface{}{"width": 1200})

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Level != "INFO" {
		t.Fatalf("Unexpected entries: %+v", entries)
	}
	fields := testutils.FieldsToMap(t, entries[0].Fields)
	if fields["duration_ms"] != int64(1500) {
		t.Errorf("duration_ms = %v", fields["duration_ms"])
	}
	if fields["width"] != 1200 {
		t.Errorf("width = %v", fields["width"])
	}
}
