package runconfig

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/test-run-config/framework/hostenv"
)

type fakeRunner struct {
	result hostenv.CommandResult
	err    error
	calls  [][]string
	lock   sync.Mutex
}

func (r *fakeRunner) Run(ctx context.Context, argv []string) (hostenv.CommandResult, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.calls = append(r.calls, append([]string(nil), argv...))
	return r.result, r.err
}

func (r *fakeRunner) callCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.calls)
}

type fakeProbe struct {
	supported bool
	reason    string
	calls     int
}

func (p *fakeProbe) probe(ctx context.Context) (bool, string) {
	p.calls++
	return p.supported, p.reason
}

type testEnv struct {
	stream *bytes.Buffer
	exits  []int
	runner *fakeRunner
	probe  *fakeProbe
	finder *hostenv.Finder
}

// newTestEnv returns collaborators that never touch the host: the finder sees only the given
// PATH directories, commands go to a fake runner, and the kill-tree probe reports supported.
func newTestEnv(isWindows bool, pathDirs ...string) *testEnv {
	finder := hostenv.NewFinder(isWindows)
	finder.Getenv = func(key string) string {
		if key == "PATH" {
			return strings.Join(pathDirs, string(os.PathListSeparator))
		}
		return ""
	}
	return &testEnv{
		stream: &bytes.Buffer{},
		runner: &fakeRunner{},
		probe:  &fakeProbe{supported: true},
		finder: finder,
	}
}

func (e *testEnv) options() []Option {
	return []Option{
		WithStream(e.stream),
		WithExitFunc(func(code int) { e.exits = append(e.exits, code) }),
		WithRunner(e.runner),
		WithKillTreeProbe(e.probe.probe),
		WithFinder(e.finder),
	}
}

func (e *testEnv) newController(t *testing.T, options Options) *Controller {
	if options.ProgramName == "" {
		options.ProgramName = "runctl"
	}
	c, err := New(options, e.options()...)
	require.NoError(t, err)
	return c
}

func makeExecutables(t *testing.T, dir string, names ...string) {
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#!/bin/sh\n"), 0755)) //nolint:gosec
	}
}
