// Package server implements the serve command.
package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/cmdhelper"
	"github.com/wuxler/rxb/pkg/commands/internal/options"
	httpserver "github.com/wuxler/rxb/pkg/server"
	"github.com/wuxler/rxb/pkg/xlog"
)

// New returns a serve command with default values.
func New() *Command {
	return &Command{
		CommonOptions:  options.NewCommonOptions(),
		CatalogOptions: options.NewCatalogOptions(),
		ServerOptions:  options.NewServerOptions(),
	}
}

// Command serves the catalog over HTTP.
type Command struct {
	CommonOptions  *options.CommonOptions
	CatalogOptions *options.CatalogOptions
	ServerOptions  *options.ServerOptions
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server"},
		Usage:   "Serve the pattern catalog over HTTP",
		UsageText: `rxb serve [OPTIONS]

# Serve the builtin patterns on the default port 8080
$ rxb serve

# Serve builtin and recipe patterns on every interface
$ rxb serve --recipe recipes/ --listen :9000
`,
		Flags:  c.Flags(),
		Action: cmdhelper.ActionFuncChain(cmdhelper.NoArgs(), c.ServerOptions.Validate, c.Run),
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{}
	flags = append(flags, c.ServerOptions.Flags()...)
	flags = append(flags, c.CatalogOptions.Flags()...)
	flags = append(flags, c.CommonOptions.Flags()...)
	return flags
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, err := c.CommonOptions.Init(ctx)
	if err != nil {
		return err
	}
	cat, err := c.CatalogOptions.NewCatalog(ctx)
	if err != nil {
		return err
	}

	if !c.CommonOptions.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	cfg := c.ServerOptions.Config()
	xlog.C(ctx).Info("starting server", "address", cfg.Address, "patterns", cat.Len())
	cmdhelper.Fprintf(cmd.Root().Writer, "Server started at http://%s", cfg.Address)
	cmdhelper.Fprintf(cmd.Root().Writer, "Press Ctrl+C to stop the server")

	return httpserver.Serve(ctx, cfg, httpserver.NewRouter(cat))
}
