package runconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/launchdarkly/test-run-config/framework/hostenv"
	o "github.com/launchdarkly/test-run-config/framework/opt"
)

// ShellName is the interpreter used for shell-mode test execution.
const ShellName = "bash"

// ShellPath returns the path of a usable shell, or "" if there is none. The search looks in the
// controller's search paths first and then in the system PATH.
//
// On a Windows host the candidate is only accepted if it understands host-native paths: a POSIX
// shell that expects /mnt/c/... style paths cannot run scripts the harness writes. The result,
// including a failed resolution, is cached; later calls do no lookups or probes.
func (c *Controller) ShellPath() string {
	c.shellLock.Lock()
	defer c.shellLock.Unlock()

	if path, ok := c.shellPath.Get(); ok {
		return path
	}

	path, found := c.finder.Which(ShellName, c.searchPaths)
	if !found {
		path, found = c.finder.WhichOnPath(ShellName)
	}
	if found && c.isHostWindows && !c.shellAcceptsHostPaths(path) {
		path = ""
	}
	if path == "" {
		c.Warning("Unable to find a usable version of bash.")
	}
	c.debugLogger.Printf("resolved shell path: %q", path)
	c.shellPath = o.Some(path)
	return path
}

func (c *Controller) shellAcceptsHostPaths(path string) bool {
	command := []string{path, "-c", fmt.Sprintf(`[[ -f "%s" ]]`, strings.ReplaceAll(path, `\`, `\\`))}
	result, err := c.runner.Run(context.Background(), command)
	if err == nil && result.ExitCode == 0 {
		return true
	}
	if c.debug {
		c.Notef("bash command failed: %s", hostenv.QuoteCommand(command))
	}
	return false
}

// ResolveToolsDirectory finds a directory containing every one of tools.
//
// If dir is an absolute path to an existing directory, it is the only candidate: it is returned
// if it has all the tools and nothing is returned otherwise. If not, the first directory in paths
// that has all the tools is returned.
//
// Shell discovery rides on the same scan: unless dir was rejected, the cached shell path is
// replaced by the shell found in the resulting directory (or on PATH if there was none). No
// compatibility probe is done for that shell.
func (c *Controller) ResolveToolsDirectory(dir string, paths []string, tools []string) o.Maybe[string] {
	var result o.Maybe[string]
	if dir != "" && filepath.IsAbs(dir) && c.finder.IsDir(dir) {
		if !c.finder.CheckToolsPath(dir, tools) {
			return o.None[string]()
		}
		result = o.Some(dir)
	} else {
		result = o.FromOK(c.finder.WhichTools(tools, paths))
	}

	var shell string
	if d, ok := result.Get(); ok {
		shell, _ = c.finder.Which(ShellName, []string{d})
	} else {
		shell, _ = c.finder.WhichOnPath(ShellName)
	}
	c.shellLock.Lock()
	c.shellPath = o.Some(shell)
	c.shellLock.Unlock()
	c.debugLogger.Printf("tools directory %s, shell path %q", result, shell)

	return result
}
