package errors

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"os/exec"
	"strings"
)

// ClassifyError maps filesystem, process and network errors onto shell error codes
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	var shellErr *ShellError
	if errors.As(err, &shellErr) {
		return shellErr.Code
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrCodePermission
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrCodeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrCodeTimeout
		}
		return ErrCodeConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrCodeConnection
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "no such file"):
		return ErrCodeNotFound
	case strings.Contains(errStr, "permission denied"), strings.Contains(errStr, "access denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "network unreachable"):
		return ErrCodeConnection
	case strings.Contains(errStr, "timeout"):
		return ErrCodeTimeout
	default:
		return ErrCodeUnknown
	}
}

// Wrap wraps err in a ShellError using ClassifyError, or returns nil
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewShellError(op, err, ClassifyError(err))
}

// HandleResourceError creates the startup error for a missing or unreadable packaged resource
func HandleResourceError(op, resource, path string, err error) error {
	contextMap := map[string]string{
		"resource": resource,
		"path":     path,
	}
	if err == nil {
		err = errors.New("resource unavailable")
	}
	if code := ClassifyError(err); code == ErrCodeNotFound || code == ErrCodePermission {
		contextMap["cause"] = code.String()
	}
	return NewShellErrorWithContext(op, err, ErrCodeResource, contextMap)
}

// HandleValidationError creates a standardized validation error
func HandleValidationError(op, field, value, reason string) error {
	contextMap := map[string]string{
		"field":  field,
		"value":  value,
		"reason": reason,
	}
	return NewShellErrorWithContext(op, errors.New("validation failed"), ErrCodeValidation, contextMap)
}

// HandleConfigError creates a standardized configuration error
func HandleConfigError(op, path string, err error) error {
	return NewShellErrorWithContext(op, err, ErrCodeConfig, map[string]string{"path": path})
}

// HandleStateError creates an error for an operation issued in the wrong lifecycle state
func HandleStateError(op, state string, err error) error {
	if err == nil {
		err = errors.New("invalid lifecycle state")
	}
	return NewShellErrorWithContext(op, err, ErrCodeState, map[string]string{"state": state})
}

// HandleRelaunchError creates a standardized relaunch error
func HandleRelaunchError(op, executable string, err error) error {
	return NewShellErrorWithContext(op, err, ErrCodeRelaunch, map[string]string{"executable": executable})
}

// HandleTimeoutError creates a standardized timeout error
func HandleTimeoutError(op, timeout string) error {
	return NewShellErrorWithContext(op, context.DeadlineExceeded, ErrCodeTimeout, map[string]string{"timeout": timeout})
}
