package runconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuiteHooksRunInRegistrationOrder(t *testing.T) {
	env := newTestEnv(false)
	c := env.newController(t, Options{})
	var calls []string
	hook := func(name string) SuiteHook {
		return func() error {
			calls = append(calls, name)
			return nil
		}
	}
	a := hook("a")
	c.RegisterSuiteSetup(a)
	c.RegisterSuiteSetup(hook("b"))
	c.RegisterSuiteSetup(a)
	c.RegisterSuiteTeardown(hook("t1"))
	c.RegisterSuiteTeardown(hook("t2"))

	setup, teardown := c.SuiteHookCounts()
	assert.Equal(t, 3, setup)
	assert.Equal(t, 2, teardown)

	assert.NoError(t, c.RunSuiteSetup())
	assert.Equal(t, []string{"a", "b", "a"}, calls)

	calls = nil
	assert.NoError(t, c.RunSuiteTeardown())
	assert.Equal(t, []string{"t1", "t2"}, calls)
}

func TestSuiteHooksStopAtFirstError(t *testing.T) {
	env := newTestEnv(false)
	c := env.newController(t, Options{})
	failure := errors.New("no database")
	ran := 0
	c.RegisterSuiteSetup(func() error { ran++; return nil })
	c.RegisterSuiteSetup(func() error { ran++; return failure })
	c.RegisterSuiteSetup(func() error { ran++; return nil })

	err := c.RunSuiteSetup()

	assert.ErrorIs(t, err, failure)
	assert.EqualError(t, err, "suite setup hook 2 of 3 failed: no database")
	assert.Equal(t, 2, ran)
}

func TestSuiteHookPanicPropagates(t *testing.T) {
	env := newTestEnv(false)
	c := env.newController(t, Options{})
	c.RegisterSuiteTeardown(func() error { panic("kaboom") })

	assert.PanicsWithValue(t, "kaboom", func() { _ = c.RunSuiteTeardown() })
}

func TestNoSuiteHooks(t *testing.T) {
	env := newTestEnv(false)
	c := env.newController(t, Options{})

	assert.NoError(t, c.RunSuiteSetup())
	assert.NoError(t, c.RunSuiteTeardown())
}
