//go:build !windows

package platform

import (
	"errors"
	"os/exec"
	"syscall"
)

// setDetachedProcess puts the child in its own session so it survives our exit
func setDetachedProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
