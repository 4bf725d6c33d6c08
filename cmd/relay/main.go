// Package main is the entry point for the relay pipeline runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/relay/cmd/relay/commands"
	"go.trai.ch/relay/internal/app"
	"go.trai.ch/relay/internal/core/domain"
	_ "go.trai.ch/relay/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger is not available when initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrRunFailed) {
			// Job failures are already logged with their details.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
