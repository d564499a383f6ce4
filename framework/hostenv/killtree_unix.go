//go:build unix

package hostenv

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// ProbeProcessTreeKill starts a throwaway shell in its own process group and kills the whole
// group. The host is capable if the child dies from that signal.
func ProbeProcessTreeKill(ctx context.Context) (bool, string) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", "sleep 5")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return false, fmt.Sprintf("cannot start a probe process: %s", err)
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return false, fmt.Sprintf("cannot signal a process group: %s", err)
	}
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return true, ""
		}
	}
	return false, "the probe process survived a signal sent to its process group"
}
