// Package main is the entry point for the waypoint zone explorer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/waypoint/cmd/waypoint/commands"
	"go.trai.ch/waypoint/internal/app"
	"go.trai.ch/waypoint/internal/core/domain"
	_ "go.trai.ch/waypoint/internal/wiring"
	"go.trai.ch/zerr"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	if cleanup != nil {
		defer cleanup()
	}

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Failed zones are already listed in the visit summary.
		if isVisitFailure(err) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

func isVisitFailure(err error) bool {
	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		return false
	}
	return zErr.Message() == domain.ErrVisitFailed.Error()
}
