package runconfig

import (
	"strconv"

	"github.com/launchdarkly/test-run-config/framework/helpers"
)

// LeakCheckerBinary is the memory checker that wraps each test when leak checking is enabled.
const LeakCheckerBinary = "valgrind"

// LeakCheckerErrorExitCode is the exit status the memory checker uses when it finds errors.
const LeakCheckerErrorExitCode = 123

func buildLeakCheckPrefix(options LeakCheckOptions) []string {
	if !options.Enabled {
		return nil
	}
	prefix := []string{
		LeakCheckerBinary,
		"-q",
		"--run-libc-freeres=no", // glibc's freeres hook produces unrelated reports
		"--tool=memcheck",
		"--trace-children=yes",
		"--error-exitcode=" + strconv.Itoa(LeakCheckerErrorExitCode),
		"--leak-check=" + options.Mode.String(),
	}
	return append(prefix, options.ExtraArgs...)
}

func copyLeakCheckOptions(options LeakCheckOptions) LeakCheckOptions {
	options.ExtraArgs = helpers.CopyOf(options.ExtraArgs)
	return options
}

// LeakCheckPrefix returns the command prefix that wraps a test in the memory checker, or nothing
// if leak checking is disabled. It is computed once, at construction.
func (c *Controller) LeakCheckPrefix() []string {
	return helpers.CopyOf(c.leakCheckPrefix)
}
