package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/test-run-config/runconfig"
)

func readParams(t *testing.T, args ...string) commandParams {
	var params commandParams
	var errOut bytes.Buffer
	require.True(t, params.read(append([]string{"runctl"}, args...), &errOut), errOut.String())
	return params
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultOptions(t *testing.T) {
	params := readParams(t)

	options, err := params.Options()
	require.NoError(t, err)

	assert.Equal(t, runconfig.DefaultProgramName, options.ProgramName)
	assert.Equal(t, runconfig.DefaultConfigPrefix, options.ConfigPrefix)
	assert.False(t, options.LeakCheck.Enabled)
	assert.Equal(t, 0, options.PerTestTimeoutSeconds)
	assert.Empty(t, options.Params)
}

func TestFlagOptions(t *testing.T) {
	params := readParams(t,
		"-program", "mytests",
		"-path", "/a", "-path", "/b",
		"-param", "x=1", "-param", "flag",
		"-quiet", "-no-execute", "-echo-all-commands",
		"-config-prefix", "suite",
		"-vg-leak", "-vg-arg", "--foo=1",
	)

	options, err := params.Options()
	require.NoError(t, err)

	assert.Equal(t, "mytests", options.ProgramName)
	assert.Equal(t, []string{"/a", "/b"}, options.SearchPaths)
	assert.Equal(t, map[string]ldvalue.Value{"x": ldvalue.String("1"), "flag": ldvalue.String("")}, options.Params)
	assert.True(t, options.Quiet)
	assert.True(t, options.NoExecute)
	assert.True(t, options.EchoAllCommands)
	assert.Equal(t, "suite", options.ConfigPrefix)
	assert.Equal(t, runconfig.LeakCheckOptions{
		Enabled: true, Mode: runconfig.LeakCheckFull, ExtraArgs: []string{"--foo=1"},
	}, options.LeakCheck)
}

func TestExplicitFlagsOverrideSettings(t *testing.T) {
	settings := writeFile(t, "runctl.toml", `
program_name = "fromfile"
quiet = true
search_paths = ["/file"]
timeout = 20

[params]
a = "file"
b = "file"
`)
	paramFile := writeFile(t, "params.yaml", "b: paramfile\nc: paramfile\n")

	params := readParams(t, "-settings", settings, "-quiet=false", "-param-file", paramFile, "-param", "c=flag")
	options, err := params.Options()
	require.NoError(t, err)

	assert.Equal(t, "fromfile", options.ProgramName)
	assert.False(t, options.Quiet)
	assert.Equal(t, []string{"/file"}, options.SearchPaths)
	assert.Equal(t, 20, options.PerTestTimeoutSeconds)
	assert.Equal(t, map[string]ldvalue.Value{
		"a": ldvalue.String("file"),
		"b": ldvalue.String("paramfile"),
		"c": ldvalue.String("flag"),
	}, options.Params)
}

func TestLeakCheckArgsRequireLeakCheck(t *testing.T) {
	params := readParams(t, "-vg-arg", "--foo")

	_, err := params.Options()
	assert.Error(t, err)
}

func TestOptionsErrors(t *testing.T) {
	params := readParams(t, "-settings", writeFile(t, "bad.toml", "unknown = 1\n"))
	_, err := params.Options()
	assert.Error(t, err)

	params = readParams(t, "-param", "=x")
	_, err = params.Options()
	assert.Error(t, err)

	params = readParams(t, "-param-file", filepath.Join(t.TempDir(), "missing.json"))
	_, err = params.Options()
	assert.Error(t, err)
}

func TestReadRejectsInvalidCombinations(t *testing.T) {
	for name, args := range map[string][]string{
		"serve without publish":   {"-serve", ":0"},
		"restore with settings":   {"-restore", "x.json", "-settings", "y.toml"},
		"positional argument":     {"extra"},
		"unknown flag":            {"-nope"},
		"malformed timeout value": {"-timeout", "soon"},
	} {
		t.Run(name, func(t *testing.T) {
			var params commandParams
			var errOut bytes.Buffer
			assert.False(t, params.read(append([]string{"runctl"}, args...), &errOut))
			assert.NotEmpty(t, errOut.String())
		})
	}
}
