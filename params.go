package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/launchdarkly/test-run-config/framework/hostenv"
	"github.com/launchdarkly/test-run-config/runconfig"
)

// stringList is a repeatable command-line flag.
type stringList []string

func (l stringList) String() string {
	return strings.Join(l, " ")
}

// Set is called by the command line parser
func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type commandParams struct {
	settingsFile    string
	programName     string
	searchPaths     stringList
	params          stringList
	paramFile       string
	quiet           bool
	debug           bool
	noExecute       bool
	echoAllCommands bool
	timeout         int
	leakCheck       bool
	leakCheckFull   bool
	leakCheckArgs   stringList
	configPrefix    string
	snapshotKey     string
	publishTo       string
	restoreFrom     string
	serveAddr       string

	// explicit holds the names of the flags that were given on the command line; only those
	// override the settings file.
	explicit map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	return c.read(args, os.Stderr)
}

func (c *commandParams) read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.settingsFile, "settings", "", "read defaults from the specified TOML file")
	fs.StringVar(&c.programName, "program", runconfig.DefaultProgramName, "program name shown in diagnostics")
	fs.Var(&c.searchPaths, "path", "additional directory to search for executables (repeatable)")
	fs.Var(&c.params, "param", "runtime parameter NAME or NAME=VALUE (repeatable)")
	fs.StringVar(&c.paramFile, "param-file", "", "read runtime parameters from a JSON or YAML file")
	fs.BoolVar(&c.quiet, "quiet", false, "suppress notes and warnings")
	fs.BoolVar(&c.debug, "debug", false, "enable debug output")
	fs.BoolVar(&c.noExecute, "no-execute", false, "discover tests without running them")
	fs.BoolVar(&c.echoAllCommands, "echo-all-commands", false, "echo every command before it runs")
	fs.IntVar(&c.timeout, "timeout", 0, "per-test timeout in seconds (0 means none)")
	fs.BoolVar(&c.leakCheck, "vg", false, "run tests under the memory checker")
	fs.BoolVar(&c.leakCheckFull, "vg-leak", false, "run tests under the memory checker with full leak reports")
	fs.Var(&c.leakCheckArgs, "vg-arg", "extra argument for the memory checker (repeatable)")
	fs.StringVar(&c.configPrefix, "config-prefix", runconfig.DefaultConfigPrefix, "prefix of config file names")
	fs.StringVar(&c.snapshotKey, "key", "default", "snapshot key used by -publish, -restore and -serve")
	fs.StringVar(&c.publishTo, "publish", "",
		"publish a snapshot of the configuration to this store (directory, redis://, consul:// or dynamodb:// URL)")
	fs.StringVar(&c.restoreFrom, "restore", "",
		"restore the configuration from a .json snapshot file, or from this store (directory or URL)")
	fs.StringVar(&c.serveAddr, "serve", "", "serve the -publish store over HTTP at this address")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.serveAddr != "" && c.publishTo == "" {
		fmt.Fprintln(errOut, "-serve requires -publish")
		fs.Usage()
		return false
	}
	if c.restoreFrom != "" && c.settingsFile != "" {
		fmt.Fprintln(errOut, "-restore cannot be combined with -settings")
		fs.Usage()
		return false
	}
	c.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicit[f.Name] = true })
	return true
}

// Options combines the settings file, if any, with the command line. Runtime parameters are
// merged in increasing priority: settings file, parameter file, -param flags.
func (c *commandParams) Options() (runconfig.Options, error) {
	settings := runconfig.DefaultSettings()
	if c.settingsFile != "" {
		s, err := runconfig.LoadSettings(c.settingsFile)
		if err != nil {
			return runconfig.Options{}, err
		}
		settings = s
	}
	options, err := settings.Options()
	if err != nil {
		return runconfig.Options{}, err
	}

	if c.explicit["program"] {
		options.ProgramName = c.programName
	}
	if c.explicit["path"] {
		options.SearchPaths = c.searchPaths
	}
	if c.explicit["quiet"] {
		options.Quiet = c.quiet
	}
	if c.explicit["debug"] {
		options.Debug = c.debug
	}
	if c.explicit["no-execute"] {
		options.NoExecute = c.noExecute
	}
	if c.explicit["echo-all-commands"] {
		options.EchoAllCommands = c.echoAllCommands
	}
	if c.explicit["timeout"] {
		options.PerTestTimeoutSeconds = c.timeout
	}
	if c.explicit["config-prefix"] {
		options.ConfigPrefix = c.configPrefix
	}
	if c.explicit["vg"] {
		options.LeakCheck.Enabled = c.leakCheck
	}
	if c.leakCheckFull {
		options.LeakCheck.Enabled = true
		options.LeakCheck.Mode = runconfig.LeakCheckFull
	}
	if c.explicit["vg-arg"] {
		options.LeakCheck.ExtraArgs = c.leakCheckArgs
	}
	if len(options.LeakCheck.ExtraArgs) > 0 && !options.LeakCheck.Enabled {
		return runconfig.Options{}, errors.New("-vg-arg requires -vg or -vg-leak")
	}

	var paramsFromFile map[string]ldvalue.Value
	if c.paramFile != "" {
		if paramsFromFile, err = runconfig.LoadParamsFile(c.paramFile); err != nil {
			return runconfig.Options{}, err
		}
	}
	paramsFromFlags, err := runconfig.ParseParamAssignments(c.params)
	if err != nil {
		return runconfig.Options{}, err
	}
	options.Params = runconfig.MergeParams(options.Params, paramsFromFile, paramsFromFlags)

	options.IsHostWindows = hostenv.HostIsWindows()
	return options, nil
}
