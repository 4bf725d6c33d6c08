package ports

import (
	"context"
	"io"
)

// CommandSpec describes one shell command to execute.
type CommandSpec struct {
	// Command is a shell command line, run through the system shell.
	Command string
	// Dir is the working directory. Empty means the process working directory.
	Dir string
	// Env is the full environment in "KEY=VALUE" form.
	Env []string
	// Output receives the combined stdout and stderr of the command.
	Output io.Writer
}

// CommandRunner defines the interface for executing step commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes the command and blocks until it finishes.
	// A non-zero exit status is returned as an error with the exit code attached.
	Run(ctx context.Context, spec CommandSpec) error
}
