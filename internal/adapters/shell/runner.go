// Package shell provides the shell command runner adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"go.trai.ch/relay/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec and the system shell.
type Runner struct {
	// Shell is the interpreter used to run step commands.
	Shell string
}

// NewRunner creates a Runner using /bin/sh.
func NewRunner() *Runner {
	return &Runner{Shell: "/bin/sh"}
}

// Run executes the command line through the shell and blocks until it
// finishes. Combined stdout and stderr are streamed to spec.Output.
func (r *Runner) Run(ctx context.Context, spec ports.CommandSpec) error {
	cmd := exec.CommandContext(ctx, r.Shell, "-c", spec.Command) //nolint:gosec // user provided command

	cmd.Dir = spec.Dir
	cmd.Env = spec.Env

	out := spec.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		exitCode := -1 // unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"),
			"command", spec.Command), "exit_code", exitCode)
	}

	return nil
}
