package runconfig

import (
	"context"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// PerTestTimeout returns the wall-clock limit for each test in seconds; 0 means no limit.
func (c *Controller) PerTestTimeout() int { return c.perTestTimeout }

// TimeoutSupportStatus reports whether a nonzero per-test timeout can be enforced on this host,
// and if not, why. It runs the capability probe every time it is called.
func (c *Controller) TimeoutSupportStatus() (bool, string) {
	supported, reason := c.killTreeProbe(context.Background())
	c.debugLogger.Printf("process-tree termination supported: %t %s", supported, reason)
	return supported, reason
}

// SetPerTestTimeout sets the per-test timeout. A negative value is fatal. A positive value is
// only accepted if the host can terminate a process tree at the time of this call; otherwise it
// is fatal. In both fatal cases the previous value is left in place.
func (c *Controller) SetPerTestTimeout(seconds int) {
	if seconds < 0 {
		c.Fatal("The timeout per test must be >= 0 seconds")
	}
	if seconds > 0 {
		if supported, reason := c.TimeoutSupportStatus(); !supported {
			c.Fatal("Setting a timeout per test not supported. " + reason)
		}
	}
	c.perTestTimeout = seconds
}

// SetPerTestTimeoutValue is SetPerTestTimeout for untyped input such as a runtime parameter. A
// value that is not an integer is fatal. JSON numbers have no separate integer type, so a
// whole-number value such as 5.0 counts as the integer 5.
func (c *Controller) SetPerTestTimeoutValue(value ldvalue.Value) {
	if !value.IsInt() {
		c.Fatalf("maxIndividualTestTime must be set to a value of type int, not %s", value.JSONString())
	}
	c.SetPerTestTimeout(value.IntValue())
}
