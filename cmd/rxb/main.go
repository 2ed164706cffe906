// Package main is the entry of the rxb cli.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/cmdhelper"
	"github.com/wuxler/rxb/pkg/commands/build"
	"github.com/wuxler/rxb/pkg/commands/render"
	"github.com/wuxler/rxb/pkg/commands/server"
	"github.com/wuxler/rxb/pkg/commands/version"
)

func main() {
	app := cli.Command{
		Name:                  "rxb",
		Usage:                 "rxb builds, renders and serves regular expressions",
		Suggest:               true,
		EnableShellCompletion: true,
		HideVersion:           true,
		HideHelpCommand:       true,
		Commands: []*cli.Command{
			version.New().ToCLI(),
			render.New().ToCLI(),
			build.New().ToCLI(),
			server.New().ToCLI(),
		},
		ExitErrHandler: func(ctx context.Context, c *cli.Command, err error) {
			cli.HandleExitCoder(err)
			cmdhelper.Fprintf(c.Root().ErrWriter, "Error: %+v\n", err)
			os.Exit(1)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	//nolint:errcheck // already checked in root command ExitErrHandler
	_ = app.Run(ctx, os.Args)
}
