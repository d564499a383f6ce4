package runconfig

import (
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/launchdarkly/test-run-config/framework"
	"github.com/launchdarkly/test-run-config/framework/diag"
	"github.com/launchdarkly/test-run-config/framework/helpers"
	"github.com/launchdarkly/test-run-config/framework/hostenv"
	o "github.com/launchdarkly/test-run-config/framework/opt"
)

var configSuffixes = []string{"cfg.toml", "cfg"} //nolint:gochecknoglobals

// Controller is the shared run configuration and diagnostics object. There is exactly one per
// harness invocation; parallel workers get a Snapshot instead.
//
// The behavior flags are fixed at construction. The mutable state (diagnostic counters, the
// cached shell path, the per-test timeout, suite hooks) is meant to be changed by the coordinating
// process while configuration is loaded, before anything is distributed.
type Controller struct {
	programName     string
	searchPaths     []string
	quiet           bool
	noExecute       bool
	debug           bool
	isHostWindows   bool
	echoAllCommands bool
	hostOS          string

	leakCheck       LeakCheckOptions
	leakCheckPrefix []string

	params            map[string]ldvalue.Value
	parallelismGroups map[string]ldvalue.Value

	configPrefix     string
	configNames      []string
	siteConfigNames  []string
	localConfigNames []string

	perTestTimeout int

	shellPath o.Maybe[string]
	shellLock sync.Mutex

	// AvailableFeatures is the process-wide feature set maintained by the configuration layer.
	AvailableFeatures framework.Features

	hooks suiteHooks

	diag          *diag.Reporter
	runner        hostenv.CommandRunner
	finder        *hostenv.Finder
	killTreeProbe hostenv.KillTreeProbe
	debugLogger   framework.Logger
	stream        io.Writer
	exit          func(int)
}

// ConfigLoader is implemented by configuration objects that can be populated from a file. The
// Controller is passed along so the loader can read parameters and report diagnostics.
type ConfigLoader interface {
	LoadFromPath(path string, c *Controller) error
}

// New creates the Controller for a harness invocation.
//
// An error is returned only if one of the Option values is invalid. A negative or unsupported
// Options.PerTestTimeoutSeconds is a usage error and is reported with Fatal, like any later call
// to SetPerTestTimeout.
func New(options Options, configs ...Option) (*Controller, error) {
	c, err := newController(options, 0, 0, configs)
	if err != nil {
		return nil, err
	}
	c.SetPerTestTimeout(options.PerTestTimeoutSeconds)
	return c, nil
}

func newController(options Options, errorCount, warningCount int, configs []Option) (*Controller, error) {
	hostOS := options.HostOS
	if hostOS == "" {
		hostOS = runtime.GOOS
	}
	c := &Controller{
		programName:       options.ProgramName,
		searchPaths:       helpers.CopyOf(options.SearchPaths),
		quiet:             options.Quiet,
		noExecute:         options.NoExecute,
		debug:             options.Debug,
		isHostWindows:     options.IsHostWindows,
		echoAllCommands:   options.EchoAllCommands,
		hostOS:            hostOS,
		leakCheck:         copyLeakCheckOptions(options.LeakCheck),
		params:            helpers.CopyMap(options.Params),
		parallelismGroups: helpers.CopyMap(options.ParallelismGroups),
		AvailableFeatures: framework.NewFeatures(),
		runner:            hostenv.OSRunner{},
		finder:            hostenv.NewFinder(options.IsHostWindows),
		killTreeProbe:     hostenv.ProbeProcessTreeKill,
		debugLogger:       framework.NullLogger(),
	}
	if err := helpers.ApplyOptions(c, configs...); err != nil {
		return nil, err
	}
	c.diag = diag.NewReporter(diag.Config{
		ProgramName:  c.programName,
		Quiet:        c.quiet,
		Output:       c.stream,
		Exit:         c.exit,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
	})
	c.leakCheckPrefix = buildLeakCheckPrefix(c.leakCheck)
	c.SetConfigPrefix(options.ConfigPrefix)
	return c, nil
}

func (c *Controller) ProgramName() string { return c.programName }

// SearchPaths returns a copy of the extra executable search directories.
func (c *Controller) SearchPaths() []string { return helpers.CopyOf(c.searchPaths) }

func (c *Controller) Quiet() bool           { return c.quiet }
func (c *Controller) NoExecute() bool       { return c.noExecute }
func (c *Controller) Debug() bool           { return c.debug }
func (c *Controller) IsHostWindows() bool   { return c.isHostWindows }
func (c *Controller) EchoAllCommands() bool { return c.echoAllCommands }

// HostOS returns the GOOS-style name of the host.
func (c *Controller) HostOS() string { return c.hostOS }

// IsDarwin returns true for Darwin-family hosts.
func (c *Controller) IsDarwin() bool {
	switch c.hostOS {
	case "darwin", "ios":
		return true
	}
	return false
}

// LeakCheck returns the memory-checker settings the controller was built with.
func (c *Controller) LeakCheck() LeakCheckOptions { return copyLeakCheckOptions(c.leakCheck) }

// Params returns a copy of all runtime parameters.
func (c *Controller) Params() map[string]ldvalue.Value { return helpers.CopyMap(c.params) }

// Param returns the runtime parameter with the given key, or defaultValue if there is none.
func (c *Controller) Param(key string, defaultValue ldvalue.Value) ldvalue.Value {
	if v, ok := c.params[key]; ok {
		return v
	}
	return defaultValue
}

// ParamString returns a runtime parameter as a string. Non-string values are rendered as JSON.
func (c *Controller) ParamString(key string, defaultValue string) string {
	v, ok := c.params[key]
	if !ok {
		return defaultValue
	}
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

var (
	trueParamStrings  = []string{"1", "true"}      //nolint:gochecknoglobals
	falseParamStrings = []string{"", "0", "false"} //nolint:gochecknoglobals
)

// ParamBool interprets a runtime parameter as a boolean. Booleans are used as-is; the strings
// "1" and "true" mean true, and "", "0", and "false" mean false, ignoring case. Anything else is
// a usage error and is fatal.
func (c *Controller) ParamBool(key string, defaultValue bool) bool {
	v, ok := c.params[key]
	if !ok || v.IsNull() {
		return defaultValue
	}
	if v.IsBool() {
		return v.BoolValue()
	}
	if v.IsString() {
		s := strings.ToLower(v.StringValue())
		if helpers.SliceContains(s, trueParamStrings) {
			return true
		}
		if helpers.SliceContains(s, falseParamStrings) {
			return false
		}
	}
	c.Fatalf("parameter '%s' should be true or false", key)
	return false
}

// ParallelismGroups returns a copy of the named concurrency buckets.
func (c *Controller) ParallelismGroups() map[string]ldvalue.Value {
	return helpers.CopyMap(c.parallelismGroups)
}

// SetParallelismGroup defines or replaces a named concurrency bucket.
func (c *Controller) SetParallelismGroup(name string, value ldvalue.Value) {
	c.parallelismGroups[name] = value
}

// ConfigPrefix returns the prefix of config file names.
func (c *Controller) ConfigPrefix() string { return c.configPrefix }

// SetConfigPrefix changes the config file prefix. An empty prefix means DefaultConfigPrefix.
// The derived name lists are only recomputed if the prefix actually changes.
func (c *Controller) SetConfigPrefix(prefix string) {
	if prefix == "" {
		prefix = DefaultConfigPrefix
	}
	if prefix == c.configPrefix && c.configNames != nil {
		return
	}
	c.configPrefix = prefix
	c.configNames = configFileNames(prefix, "")
	c.siteConfigNames = configFileNames(prefix, "site.")
	c.localConfigNames = configFileNames(prefix, "local.")
}

func configFileNames(prefix, infix string) []string {
	ret := make([]string, 0, len(configSuffixes))
	for _, suffix := range configSuffixes {
		ret = append(ret, prefix+"."+infix+suffix)
	}
	return ret
}

// ConfigNames returns the primary config file names, such as "run.cfg.toml".
func (c *Controller) ConfigNames() []string { return helpers.CopyOf(c.configNames) }

// SiteConfigNames returns the site-override config file names, such as "run.site.cfg.toml".
func (c *Controller) SiteConfigNames() []string { return helpers.CopyOf(c.siteConfigNames) }

// LocalConfigNames returns the local-override config file names, such as "run.local.cfg.toml".
func (c *Controller) LocalConfigNames() []string { return helpers.CopyOf(c.localConfigNames) }

// LoadConfig populates a configuration object from an alternate path.
func (c *Controller) LoadConfig(loader ConfigLoader, path string) error {
	if c.debug {
		c.Notef("load_config from %q", path)
	}
	return loader.LoadFromPath(path, c)
}

// DebugLogger returns the destination for internal debug output.
func (c *Controller) DebugLogger() framework.Logger { return c.debugLogger }
