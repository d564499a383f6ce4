package runconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Settings is the on-disk form of Options, read from a TOML file so that a site can keep its
// harness configuration out of the command line.
//
//	program_name = "runctl"
//	search_paths = ["/opt/llvm/bin"]
//	timeout = 60
//
//	[leak_check]
//	enabled = true
//	mode = "full"
//	args = ["--num-callers=40"]
//
//	[params]
//	target_triple = "x86_64-linux-gnu"
//
//	[parallelism_groups]
//	shared-gpu = 1
type Settings struct {
	ProgramName       string                 `toml:"program_name"`
	SearchPaths       []string               `toml:"search_paths"`
	Quiet             bool                   `toml:"quiet"`
	Debug             bool                   `toml:"debug"`
	NoExecute         bool                   `toml:"no_execute"`
	EchoAllCommands   bool                   `toml:"echo_all_commands"`
	ConfigPrefix      string                 `toml:"config_prefix"`
	TimeoutSeconds    int                    `toml:"timeout"`
	LeakCheck         LeakCheckSettings      `toml:"leak_check"`
	Params            map[string]interface{} `toml:"params"`
	ParallelismGroups map[string]interface{} `toml:"parallelism_groups"`
}

type LeakCheckSettings struct {
	Enabled bool     `toml:"enabled"`
	Mode    string   `toml:"mode"`
	Args    []string `toml:"args"`
}

// DefaultProgramName is used when neither the settings file nor the command line names the
// program.
const DefaultProgramName = "runctl"

// LoadSettings reads and validates a TOML settings file. Keys that do not correspond to a
// setting are rejected, since a misspelled key would otherwise be silently ignored.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("settings parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Settings{}, fmt.Errorf("settings file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}
	s.applyDefaults()
	if err := ValidateSettings(s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings (%s): %w", path, err)
	}
	return s, nil
}

// DefaultSettings returns the settings used when there is no settings file.
func DefaultSettings() Settings {
	var s Settings
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.ProgramName == "" {
		s.ProgramName = DefaultProgramName
	}
	if s.ConfigPrefix == "" {
		s.ConfigPrefix = DefaultConfigPrefix
	}
}

func ValidateSettings(s Settings) error {
	if s.TimeoutSeconds < 0 {
		return errors.New("timeout must be >= 0")
	}
	if _, err := ParseLeakCheckMode(s.LeakCheck.Mode); err != nil {
		return err
	}
	if !s.LeakCheck.Enabled && len(s.LeakCheck.Args) > 0 {
		return errors.New("leak_check.args given but leak_check.enabled is false")
	}
	return nil
}

// Options converts the settings into controller Options. IsHostWindows and HostOS are left for
// the caller, since they describe the host rather than the configuration.
func (s Settings) Options() (Options, error) {
	mode, err := ParseLeakCheckMode(s.LeakCheck.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		ProgramName:     s.ProgramName,
		SearchPaths:     s.SearchPaths,
		Quiet:           s.Quiet,
		Debug:           s.Debug,
		NoExecute:       s.NoExecute,
		EchoAllCommands: s.EchoAllCommands,
		ConfigPrefix:    s.ConfigPrefix,
		LeakCheck: LeakCheckOptions{
			Enabled:   s.LeakCheck.Enabled,
			Mode:      mode,
			ExtraArgs: s.LeakCheck.Args,
		},
		Params:                arbitraryValues(s.Params),
		ParallelismGroups:     arbitraryValues(s.ParallelismGroups),
		PerTestTimeoutSeconds: s.TimeoutSeconds,
	}, nil
}

func arbitraryValues(m map[string]interface{}) map[string]ldvalue.Value {
	ret := make(map[string]ldvalue.Value, len(m))
	for k, v := range m {
		ret[k] = ldvalue.CopyArbitraryValue(v)
	}
	return ret
}
