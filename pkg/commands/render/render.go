// Package render implements the render command.
package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/catalog"
	"github.com/wuxler/rxb/pkg/cmdhelper"
	"github.com/wuxler/rxb/pkg/commands/internal/options"
	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/xlog"
)

// New returns a render command with default values.
func New() *Command {
	return &Command{
		CommonOptions:  options.NewCommonOptions(),
		CatalogOptions: options.NewCatalogOptions(),
		Format:         cmdhelper.FormatText,
	}
}

// Command renders catalog patterns.
type Command struct {
	CommonOptions  *options.CommonOptions
	CatalogOptions *options.CatalogOptions

	Format string
	Check  bool
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render named patterns as regular expressions",
		UsageText: `rxb render [OPTIONS] [NAME...]

# Render every builtin pattern
$ rxb render

# Render a pattern declared in a recipe file, checking it compiles
$ rxb render --recipe recipes/semver.yaml --check semver

# Render the image reference pattern as JSON
$ rxb render --format json oci.reference
`,
		Flags:  c.Flags(),
		Action: cmdhelper.ActionFuncChain(c.Run),
	}
}

// Flags defines the flags related to the current command.
func (c *Command) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       `output format, oneof ["text", "json", "yaml"]`,
			Value:       c.Format,
			Destination: &c.Format,
		},
		&cli.BoolFlag{
			Name:        "check",
			Usage:       "fail when a rendered pattern does not compile",
			Value:       c.Check,
			Destination: &c.Check,
		},
	}
	flags = append(flags, c.CatalogOptions.Flags()...)
	flags = append(flags, c.CommonOptions.Flags()...)
	return flags
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	if err := cmdhelper.ValidateFormat(c.Format); err != nil {
		return err
	}
	ctx, err := c.CommonOptions.Init(ctx)
	if err != nil {
		return err
	}
	cat, err := c.CatalogOptions.NewCatalog(ctx)
	if err != nil {
		return err
	}
	patterns, err := c.render(ctx, cat, cmd.Args().Slice())
	if err != nil {
		return err
	}
	return cmdhelper.Write(cmd.Root().Writer, c.Format, patterns, func(w io.Writer) error {
		return writeText(w, patterns)
	})
}

func (c *Command) render(ctx context.Context, cat *catalog.Catalog, names []string) ([]catalog.Pattern, error) {
	if len(names) == 0 {
		names = cat.Names()
	}
	if missing := lo.Reject(names, func(name string, _ int) bool { return cat.Has(name) }); len(missing) > 0 {
		return nil, errdefs.Newf(errdefs.ErrNotFound, "unknown patterns [%s]", strings.Join(missing, ", "))
	}
	patterns := make([]catalog.Pattern, 0, len(names))
	for _, name := range lo.Uniq(names) {
		p, err := cat.Render(ctx, name)
		if err != nil {
			return nil, err
		}
		if c.Check {
			if _, err := cat.Compile(ctx, name); err != nil {
				return nil, err
			}
		}
		patterns = append(patterns, p)
	}
	xlog.C(ctx).Debug("patterns rendered", "count", len(patterns), "checked", c.Check)
	return patterns, nil
}

// writeText prints the bare expression for a single pattern and a name
// column otherwise.
func writeText(w io.Writer, patterns []catalog.Pattern) error {
	if len(patterns) == 1 {
		_, err := fmt.Fprintln(w, patterns[0].Expr)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range patterns {
		fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Expr)
	}
	return tw.Flush()
}
