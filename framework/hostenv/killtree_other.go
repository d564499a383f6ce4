//go:build !unix && !windows

package hostenv

import (
	"context"
	"runtime"
)

func ProbeProcessTreeKill(context.Context) (bool, string) {
	return false, "process groups are not supported on " + runtime.GOOS
}
