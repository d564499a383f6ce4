package hostenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResult is the outcome of a command that was able to start.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs a command to completion. A nonzero exit status is reported in the result,
// not as an error; the error is only for commands that could not be run at all.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (CommandResult, error)
}

// OSRunner executes commands on the host.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, argv []string) (CommandResult, error) {
	if len(argv) == 0 {
		return CommandResult{}, errors.New("empty argv")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("run %q failed: %w", argv, err)
	}
	return result, nil
}

// QuoteCommand renders argv the way it is shown in diagnostics: every element double-quoted,
// separated by spaces.
func QuoteCommand(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		quoted = append(quoted, `"`+a+`"`)
	}
	return strings.Join(quoted, " ")
}
