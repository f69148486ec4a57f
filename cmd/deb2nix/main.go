// Package main is the entry point for the deb2nix converter.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/cmd/deb2nix/commands"
	"go.trai.ch/deb2nix/internal/app"
	"go.trai.ch/deb2nix/internal/core/domain"
	_ "go.trai.ch/deb2nix/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// Flush the progress display before the process exits.
	defer func() { _ = components.Tracer.Close() }()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		var exitErr *domain.EscalatedExitError
		if errors.As(err, &exitErr) {
			// The pipeline ran inside a provisioned context; mirror its
			// exit status without logging a second time.
			return exitErr.Code
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
