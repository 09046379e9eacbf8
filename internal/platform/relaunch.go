package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	apperrors "waitingtodo/internal/infrastructure/errors"
)

// RelaunchEnv carries the predecessor pid into a relaunched process
const RelaunchEnv = "WAITINGTODO_RELAUNCHED_FROM"

// Relauncher starts a detached copy of the running executable
type Relauncher struct {
	Executable string
	Args       []string
	Dir        string

	start func(*exec.Cmd) error
}

// NewRelauncher resolves the running executable, following symlinks
func NewRelauncher() (*Relauncher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return &Relauncher{
		Executable: exe,
		Args:       os.Args[1:],
		Dir:        filepath.Dir(exe),
	}, nil
}

// Command builds the successor command without starting it
func (r *Relauncher) Command() *exec.Cmd {
	cmd := exec.Command(r.Executable, r.Args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), RelaunchEnv+"="+strconv.Itoa(os.Getpid()))
	setDetachedProcess(cmd)
	return cmd
}

// Relaunch schedules the successor; it returns once the child has been started
func (r *Relauncher) Relaunch() error {
	cmd := r.Command()

	start := r.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return apperrors.HandleRelaunchError("relaunch", r.Executable, err)
	}
	if cmd.Process != nil {
		// The child is not waited on; it outlives this process.
		_ = cmd.Process.Release()
	}
	return nil
}

// WaitForPredecessor blocks until the process that relaunched us has exited,
// or timeout elapses. It returns false only on timeout.
func WaitForPredecessor(timeout time.Duration) bool {
	pid, err := strconv.Atoi(os.Getenv(RelaunchEnv))
	if err != nil || pid <= 0 {
		return true
	}
	return waitForExit(pid, timeout, 50*time.Millisecond, processAlive)
}

func waitForExit(pid int, timeout, interval time.Duration, alive func(int) bool) bool {
	deadline := time.Now().Add(timeout)
	for alive(pid) {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(interval)
	}
	return true
}
