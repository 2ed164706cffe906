// Package version implements the version command.
package version

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/appinfo"
	"github.com/wuxler/rxb/pkg/cmdhelper"
)

// New returns a version command printing the detailed text listing.
func New() *Command {
	return &Command{Format: cmdhelper.FormatText}
}

// Command prints the build information of the running binary.
type Command struct {
	Short  bool
	Format string
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version",
		UsageText: `rxb version [OPTIONS]

# Print the version only
$ rxb version --short

# Print the build information as JSON
$ rxb version --format json
`,
		Flags:  c.Flags(),
		Action: cmdhelper.ActionFuncChain(cmdhelper.NoArgs(), c.validate, c.Run),
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "short",
			Aliases:     []string{"s"},
			Usage:       "print the version only, ignored by json and yaml",
			Value:       c.Short,
			Destination: &c.Short,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       `output format, oneof ["text", "json", "yaml"]`,
			Value:       c.Format,
			Destination: &c.Format,
		},
	}
}

func (c *Command) validate(_ context.Context, _ *cli.Command) error {
	return cmdhelper.ValidateFormat(c.Format)
}

// Run is the main function for the current command.
func (c *Command) Run(_ context.Context, cmd *cli.Command) error {
	root := cmd.Root()
	return appinfo.WriteVersion(root.Writer, appinfo.GetVersion(), root.Name, c.Format, c.Short)
}
