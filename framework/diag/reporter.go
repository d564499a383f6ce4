package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Kind is the severity of a diagnostic.
type Kind string

const (
	KindNote    Kind = "note"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindFatal   Kind = "fatal"
)

// FatalExitCode is the process exit status used by Reporter.Fatal.
const FatalExitCode = 2

var kindColors = map[Kind]*color.Color{ //nolint:gochecknoglobals
	KindNote:    color.New(color.FgCyan),
	KindWarning: color.New(color.FgYellow),
	KindError:   color.New(color.FgRed),
	KindFatal:   color.New(color.FgRed, color.Bold),
}

// FatalExit is the panic value used by Reporter.Fatal if the configured exit function returns
// instead of terminating the process. Production code never sees it; tests that replace the exit
// function can recover it.
type FatalExit struct {
	Message string
	Code    int
}

func (f *FatalExit) Error() string {
	return fmt.Sprintf("fatal (exit status %d): %s", f.Code, f.Message)
}

// Config contains the parameters for NewReporter.
type Config struct {
	// ProgramName is the first field of every output line.
	ProgramName string

	// Quiet suppresses notes and warnings. Warnings are still counted.
	Quiet bool

	// Output is the diagnostic stream. If nil, os.Stderr is used.
	Output io.Writer

	// Exit terminates the process. If nil, os.Exit is used.
	Exit func(code int)

	// ErrorCount and WarningCount are the starting counter values, used when a reporter is
	// rebuilt from a snapshot.
	ErrorCount   int
	WarningCount int
}

// Reporter formats and counts diagnostics. It is safe for concurrent use.
type Reporter struct {
	programName  string
	quiet        bool
	out          io.Writer
	colorize     bool
	exit         func(int)
	errorCount   int
	warningCount int
	helpers      map[string]struct{}
	lock         sync.Mutex
}

func NewReporter(config Config) *Reporter {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	exit := config.Exit
	if exit == nil {
		exit = os.Exit
	}
	return &Reporter{
		programName:  config.ProgramName,
		quiet:        config.Quiet,
		out:          out,
		colorize:     isTerminal(out),
		exit:         exit,
		errorCount:   config.ErrorCount,
		warningCount: config.WarningCount,
		helpers:      make(map[string]struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Reporter) ProgramName() string { return r.programName }

func (r *Reporter) Quiet() bool { return r.quiet }

func (r *Reporter) ErrorCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.errorCount
}

func (r *Reporter) WarningCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.warningCount
}

// Helper marks the function that calls it as a forwarding wrapper whose frame should not be
// reported as a diagnostic's location. Equivalent to Go's testing.T.Helper().
func (r *Reporter) Helper() {
	name, ok := callingFunctionName(1)
	if !ok {
		return
	}
	r.lock.Lock()
	r.helpers[name] = struct{}{}
	r.lock.Unlock()
}

// Note reports an informational message. It is suppressed in quiet mode.
func (r *Reporter) Note(message string) {
	if r.quiet {
		return
	}
	r.write(KindNote, message)
}

func (r *Reporter) Notef(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	r.write(KindNote, fmt.Sprintf(format, args...))
}

// Warning reports a soft problem. The output is suppressed in quiet mode, but the warning is
// counted either way.
func (r *Reporter) Warning(message string) {
	r.warning(message)
}

func (r *Reporter) Warningf(format string, args ...interface{}) {
	r.warning(fmt.Sprintf(format, args...))
}

func (r *Reporter) warning(message string) {
	if !r.quiet {
		r.write(KindWarning, message)
	}
	r.lock.Lock()
	r.warningCount++
	r.lock.Unlock()
}

// Error reports a problem that does not stop execution. It is never suppressed.
func (r *Reporter) Error(message string) {
	r.error(message)
}

func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.error(fmt.Sprintf(format, args...))
}

func (r *Reporter) error(message string) {
	r.write(KindError, message)
	r.lock.Lock()
	r.errorCount++
	r.lock.Unlock()
}

// Fatal reports a message and terminates the process with FatalExitCode. It never returns.
func (r *Reporter) Fatal(message string) {
	r.fatal(message)
}

func (r *Reporter) Fatalf(format string, args ...interface{}) {
	r.fatal(fmt.Sprintf(format, args...))
}

func (r *Reporter) fatal(message string) {
	r.write(KindFatal, message)
	r.exit(FatalExitCode)
	panic(&FatalExit{Message: message, Code: FatalExitCode})
}

func (r *Reporter) write(kind Kind, message string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	location := callerLocation(r.helpers)
	label := string(kind)
	if r.colorize {
		label = kindColors[kind].Sprint(label)
	}
	_, _ = fmt.Fprintf(r.out, "%s: %s: %s: %s\n", r.programName, location, label, message)
}
