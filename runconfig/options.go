package runconfig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/launchdarkly/test-run-config/framework"
	"github.com/launchdarkly/test-run-config/framework/helpers"
	"github.com/launchdarkly/test-run-config/framework/hostenv"
)

// DefaultConfigPrefix is the config file prefix used when Options.ConfigPrefix is empty.
const DefaultConfigPrefix = "run"

// LeakCheckMode selects how much leak information the memory checker reports.
type LeakCheckMode int

const (
	LeakCheckSummary LeakCheckMode = iota
	LeakCheckFull
)

func (m LeakCheckMode) String() string {
	if m == LeakCheckFull {
		return "full"
	}
	return "summary"
}

// ParseLeakCheckMode accepts "full" or "summary"; an empty string means summary.
func ParseLeakCheckMode(s string) (LeakCheckMode, error) {
	switch strings.ToLower(s) {
	case "", "summary":
		return LeakCheckSummary, nil
	case "full":
		return LeakCheckFull, nil
	default:
		return LeakCheckSummary, fmt.Errorf("unknown leak check mode %q", s)
	}
}

// LeakCheckOptions controls whether tests are wrapped in the memory checker.
type LeakCheckOptions struct {
	Enabled   bool
	Mode      LeakCheckMode
	ExtraArgs []string
}

// Options contains the constructor inputs for a Controller. Collections are copied by New, so
// the caller may keep modifying its own values afterward.
type Options struct {
	// ProgramName identifies the tool in diagnostic output.
	ProgramName string

	// SearchPaths are extra directories searched, in order, when resolving auxiliary executables.
	SearchPaths []string

	Quiet           bool
	NoExecute       bool
	Debug           bool
	IsHostWindows   bool
	EchoAllCommands bool

	LeakCheck LeakCheckOptions

	// Params are arbitrary key/value overrides visible to configuration scripts.
	Params map[string]ldvalue.Value

	// ConfigPrefix is the prefix of config file names. Defaults to DefaultConfigPrefix.
	ConfigPrefix string

	// PerTestTimeoutSeconds is the wall-clock limit for each test; 0 means no limit.
	PerTestTimeoutSeconds int

	// ParallelismGroups are named concurrency buckets consumed by the scheduler.
	ParallelismGroups map[string]ldvalue.Value

	// HostOS is the GOOS-style name of the host, used for platform queries. Defaults to the OS
	// this binary was built for.
	HostOS string
}

// Option configures a non-transferable collaborator of a Controller. These are never part of a
// Snapshot, so a restored Controller needs them supplied again if the defaults are not wanted.
type Option = helpers.ConfigOptionFunc[Controller]

// WithRunner sets the CommandRunner used for shell compatibility probes.
func WithRunner(runner hostenv.CommandRunner) Option {
	return func(c *Controller) error {
		if runner == nil {
			return errors.New("runner must not be nil")
		}
		c.runner = runner
		return nil
	}
}

// WithFinder sets the Finder used for executable and tool lookups.
func WithFinder(finder *hostenv.Finder) Option {
	return func(c *Controller) error {
		if finder == nil {
			return errors.New("finder must not be nil")
		}
		c.finder = finder
		return nil
	}
}

// WithKillTreeProbe sets the host capability check used by the timeout policy.
func WithKillTreeProbe(probe hostenv.KillTreeProbe) Option {
	return func(c *Controller) error {
		if probe == nil {
			return errors.New("kill-tree probe must not be nil")
		}
		c.killTreeProbe = probe
		return nil
	}
}

// WithDebugLogger sets the destination for internal debug output.
func WithDebugLogger(logger framework.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			logger = framework.NullLogger()
		}
		c.debugLogger = logger
		return nil
	}
}

// WithStream sets the diagnostic stream. The default is os.Stderr.
func WithStream(stream io.Writer) Option {
	return func(c *Controller) error {
		c.stream = stream
		return nil
	}
}

// WithExitFunc replaces os.Exit as the way Fatal terminates the process.
func WithExitFunc(exit func(int)) Option {
	return func(c *Controller) error {
		c.exit = exit
		return nil
	}
}
