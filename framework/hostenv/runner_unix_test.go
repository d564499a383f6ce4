//go:build unix

package hostenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRunnerCapturesOutputAndExitCode(t *testing.T) {
	result, err := OSRunner{}.Run(context.Background(), []string{"/bin/sh", "-c", "echo out; echo err >&2; exit 3"})
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.Equal(t, 3, result.ExitCode)
}

func TestOSRunnerSucceeds(t *testing.T) {
	result, err := OSRunner{}.Run(context.Background(), []string{"/bin/sh", "-c", "exit 0"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}

func TestOSRunnerCannotStart(t *testing.T) {
	_, err := OSRunner{}.Run(context.Background(), []string{"/definitely/not/a/command"})
	assert.Error(t, err)

	_, err = OSRunner{}.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestProbeProcessTreeKill(t *testing.T) {
	supported, reason := ProbeProcessTreeKill(context.Background())
	assert.True(t, supported, reason)
	assert.Equal(t, "", reason)
}
