// Package hostenv contains everything the run controller needs to know about the host: how to
// find executables, how to run a short-lived probe command, and whether a process tree can be
// forcibly terminated.
//
// Lookups go through Finder and commands go through CommandRunner so that tests can substitute
// doubles for the real file system and process table.
package hostenv
