package runconfig

import (
	"fmt"
	"sync"
)

// SuiteHook is a callback that runs once before or once after the whole test suite.
type SuiteHook func() error

type suiteHooks struct {
	setup    []SuiteHook
	teardown []SuiteHook
	lock     sync.Mutex
}

// RegisterSuiteSetup adds a hook to run before any test executes. Hooks run in registration
// order; registering the same hook twice runs it twice.
func (c *Controller) RegisterSuiteSetup(hook SuiteHook) {
	c.hooks.lock.Lock()
	c.hooks.setup = append(c.hooks.setup, hook)
	c.hooks.lock.Unlock()
}

// RegisterSuiteTeardown adds a hook to run after every test has completed.
func (c *Controller) RegisterSuiteTeardown(hook SuiteHook) {
	c.hooks.lock.Lock()
	c.hooks.teardown = append(c.hooks.teardown, hook)
	c.hooks.lock.Unlock()
}

// SuiteHookCounts returns the number of registered setup and teardown hooks.
func (c *Controller) SuiteHookCounts() (setup, teardown int) {
	c.hooks.lock.Lock()
	defer c.hooks.lock.Unlock()
	return len(c.hooks.setup), len(c.hooks.teardown)
}

// RunSuiteSetup runs every setup hook in registration order. It stops at the first hook that
// fails and returns that error; later hooks do not run. A panicking hook is not recovered.
func (c *Controller) RunSuiteSetup() error {
	return runSuiteHooks("setup", c.hooks.snapshot(true))
}

// RunSuiteTeardown runs every teardown hook in registration order, with the same failure
// behavior as RunSuiteSetup. The caller should run it even if some tests failed.
func (c *Controller) RunSuiteTeardown() error {
	return runSuiteHooks("teardown", c.hooks.snapshot(false))
}

func (h *suiteHooks) snapshot(setup bool) []SuiteHook {
	h.lock.Lock()
	defer h.lock.Unlock()
	if setup {
		return append([]SuiteHook(nil), h.setup...)
	}
	return append([]SuiteHook(nil), h.teardown...)
}

func runSuiteHooks(kind string, hooks []SuiteHook) error {
	for i, hook := range hooks {
		if err := hook(); err != nil {
			return fmt.Errorf("suite %s hook %d of %d failed: %w", kind, i+1, len(hooks), err)
		}
	}
	return nil
}
