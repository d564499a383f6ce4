//go:build windows

package hostenv

import (
	"context"
	"fmt"
	"os/exec"
)

// ProbeProcessTreeKill checks that taskkill, which can terminate a process tree with /T, is
// present and runnable.
func ProbeProcessTreeKill(ctx context.Context) (bool, string) {
	path, err := exec.LookPath("taskkill")
	if err != nil {
		return false, fmt.Sprintf("taskkill is not available: %s", err)
	}
	if err := exec.CommandContext(ctx, path, "/?").Run(); err != nil {
		return false, fmt.Sprintf("%s /? failed: %s", path, err)
	}
	return true, ""
}
