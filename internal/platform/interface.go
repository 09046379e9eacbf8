package platform

import (
	"runtime"
)

// ExitPolicy decides what happens when the last window is gone
type ExitPolicy interface {
	// KeepAliveWithoutWindows reports whether the process stays up with no window
	KeepAliveWithoutWindows() bool
}

// PolicyFunc adapts a plain predicate to ExitPolicy
type PolicyFunc func() bool

func (f PolicyFunc) KeepAliveWithoutWindows() bool { return f() }

// ExitPolicyFor returns the convention of the given GOOS: macOS apps persist without windows
func ExitPolicyFor(goos string) ExitPolicy {
	keep := goos == "darwin"
	return PolicyFunc(func() bool { return keep })
}

// DefaultExitPolicy returns the policy of the running platform
func DefaultExitPolicy() ExitPolicy {
	return ExitPolicyFor(runtime.GOOS)
}

// Identifier maps a GOOS value to the platform string the UI expects
func Identifier(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	default:
		return goos
	}
}

// Current returns the platform identifier of the running process
func Current() string {
	return Identifier(runtime.GOOS)
}
