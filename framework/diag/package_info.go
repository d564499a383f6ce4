// Package diag implements the note/warning/error/fatal diagnostics protocol used by the run
// controller and by configuration scripts.
//
// Every message is attributed to the source location of the code that reported it, not to the
// reporting machinery: frames inside this package are skipped, as are frames belonging to any
// function that called Reporter.Helper. This mirrors testing.T.Helper, so a wrapper method on
// another type can forward to a Reporter and still attribute messages to its own caller.
package diag
