// Package framework contains the low-level pieces shared by every part of the run controller.
// The base package contains shared types such as Logger and Features; other components are in
// the subpackages diag, hostenv, helpers, and opt.
//
// The general model is:
//
// 1. A single runconfig.Controller is built once per harness invocation and is passed
// explicitly to every per-directory configuration script and to the scheduler.
//
// 2. Anything that has to reason about the host (looking up executables, spawning probe
// processes, killing process trees) lives in hostenv, behind small interfaces so that tests
// can substitute doubles.
//
// 3. Diagnostics go through diag.Reporter, which attributes every message to the code that
// reported it rather than to the reporting machinery.
package framework
