// Package runconfig contains the Controller: the run configuration and diagnostics object that
// is built once per harness invocation and passed explicitly to every configuration script,
// worker, and scheduler stage.
//
// The Controller owns the environment facts for the run (search paths, platform flags, runtime
// parameters), derives the facilities that depend on the host (a usable shell, a validated
// per-test timeout, the leak-check command prefix), reports diagnostics, and brackets the whole
// suite with setup and teardown hooks. Parallel workers do not share it: they receive a Snapshot,
// which holds every transferable field and nothing else.
package runconfig
