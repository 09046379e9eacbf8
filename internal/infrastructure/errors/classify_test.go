package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyError(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing.png"))

	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"nil", nil, ErrCodeUnknown},
		{"stat missing file", statErr, ErrCodeNotFound},
		{"fs not exist", fs.ErrNotExist, ErrCodeNotFound},
		{"wrapped permission", fmt.Errorf("open icon: %w", fs.ErrPermission), ErrCodePermission},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"shell error keeps code", NewShellError("op", nil, ErrCodeTray), ErrCodeTray},
		{"refused by message", errors.New("dial tcp 127.0.0.1:5173: connection refused"), ErrCodeConnection},
		{"access denied by message", errors.New("Access denied"), ErrCodePermission},
		{"unrecognized", errors.New("something odd"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.expected {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap("read_icon", fs.ErrNotExist)
	if ClassifyError(err) != ErrCodeNotFound {
		t.Errorf("Expected not-found classification, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("Wrapped error should still match fs.ErrNotExist")
	}
}

func TestHandleResourceError(t *testing.T) {
	err := HandleResourceError("resolve_resources", "icon", "/app/resources/icon.png", fs.ErrNotExist)

	if !IsResource(err) {
		t.Fatalf("Expected resource error, got %v", err)
	}
	var shellErr *ShellError
	if !errors.As(err, &shellErr) {
		t.Fatal("Expected *ShellError")
	}
	if shellErr.Context["resource"] != "icon" || shellErr.Context["cause"] != "NOT_FOUND" {
		t.Errorf("Unexpected context: %v", shellErr.Context)
	}
	if shellErr.Retryable {
		t.Error("Resource errors must not be retryable")
	}
}

func TestHandleRelaunchError(t *testing.T) {
	cause := errors.New("fork failed")
	err := HandleRelaunchError("relaunch", "/app/waitingtodo", cause)
	if !IsRelaunch(err) || !errors.Is(err, cause) {
		t.Errorf("Unexpected relaunch error: %v", err)
	}
}

func TestHandleStateError(t *testing.T) {
	cause := errors.New("already started")

	tests := []struct {
		name  string
		cause error
	}{
		{"with cause", cause},
		{"default cause", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleStateError("start", "started", tt.cause)
			if !IsState(err) {
				t.Fatalf("Expected state error, got %v", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("Expected %v to wrap the cause", err)
			}
			var shellErr *ShellError
			if !errors.As(err, &shellErr) || shellErr.Context["state"] != "started" {
				t.Errorf("Unexpected context in %v", err)
			}
		})
	}
}

func TestHandleTimeoutError(t *testing.T) {
	err := HandleTimeoutError("wait_for_predecessor", "10s")
	if ClassifyError(err) != ErrCodeTimeout || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Unexpected timeout error: %v", err)
	}
	if !IsRetryable(err) {
		t.Error("Timeouts are retryable")
	}
}
