// Package build implements the interactive build command.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/cmdhelper"
	"github.com/wuxler/rxb/pkg/commands/internal/options"
	"github.com/wuxler/rxb/pkg/errdefs"
	rb "github.com/wuxler/rxb/pkg/regexbuilder"
	"github.com/wuxler/rxb/pkg/util/xcontext"
	"github.com/wuxler/rxb/pkg/xlog"
)

// Steps offered by the prompt, in menu order.
const (
	StepLiteral       = "literal"
	StepRaw           = "raw"
	StepRange         = "range"
	StepInvertedRange = "inverted range"
	StepOneOrMore     = "one or more"
	StepZeroOrMore    = "zero or more"
	StepOptional      = "optional"
	StepRepeat        = "repeat"
	StepGroup         = "group all"
	StepAlternate     = "alternate all with"
	StepUndo          = "undo"
	StepDone          = "done"
)

// Menu lists the steps offered by the prompt.
var Menu = []string{
	StepLiteral, StepRaw, StepRange, StepInvertedRange,
	StepOneOrMore, StepZeroOrMore, StepOptional, StepRepeat,
	StepGroup, StepAlternate, StepUndo, StepDone,
}

// New returns a build command prompting on the terminal.
func New() *Command {
	return &Command{
		CommonOptions: options.NewCommonOptions(),
		Prompter:      NewTerminalPrompter(os.Stdin, os.Stdout),
	}
}

// Command builds a pattern step by step from prompts.
type Command struct {
	CommonOptions *options.CommonOptions
	Prompter      Prompter
}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a pattern interactively",
		UsageText: `rxb build

Choose a step, answer its prompts and repeat until "done". The pattern
built so far is printed after every step.
`,
		Flags:  c.CommonOptions.Flags(),
		Action: cmdhelper.ActionFuncChain(cmdhelper.NoArgs(), c.Run),
	}
}

// Run is the main function for the current command.
func (c *Command) Run(ctx context.Context, cmd *cli.Command) error {
	ctx, err := c.CommonOptions.Init(ctx)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	b, err := c.Loop(ctx, w)
	if err != nil {
		return err
	}
	if _, err := regexp.Compile(b.String()); err != nil {
		cmdhelper.Fprintf(cmd.Root().ErrWriter, "Warning: the pattern does not compile: %v", err)
	}
	cmdhelper.Fprintf(w, "%s", b.String())
	return nil
}

// Loop prompts for steps until done and returns the resulting builder. The
// intermediate pattern is written to w after each step.
func (c *Command) Loop(ctx context.Context, w io.Writer) (rb.Builder, error) {
	history := []rb.Builder{rb.New()}
	for {
		if err := xcontext.Check(ctx, "build"); err != nil {
			return rb.Builder{}, err
		}
		current := history[len(history)-1]
		index, err := c.Prompter.Select("Step", Menu)
		if err != nil {
			return rb.Builder{}, err
		}
		step := Menu[index]
		switch step {
		case StepDone:
			return current, nil
		case StepUndo:
			if len(history) > 1 {
				history = history[:len(history)-1]
			}
		default:
			next, err := c.apply(current, step)
			if errors.Is(err, errdefs.ErrInvalidParameter) {
				cmdhelper.Fprintf(w, "Error: %v", err)
				continue
			}
			if err != nil {
				return rb.Builder{}, err
			}
			history = append(history, next)
		}
		current = history[len(history)-1]
		xlog.C(ctx).Debug("step applied", "step", step, "weight", current.Weight())
		cmdhelper.Fprintf(w, "%s", current.String())
	}
}

func (c *Command) apply(b rb.Builder, step string) (rb.Builder, error) {
	switch step {
	case StepGroup:
		return rb.Group(b, rb.NonCapturing()), nil
	case StepRepeat:
		text, err := c.Prompter.Input("Text", nonEmpty)
		if err != nil {
			return b, err
		}
		count, err := c.Prompter.Input("Count", nonNegative)
		if err != nil {
			return b, err
		}
		n, err := cast.ToIntE(count)
		if err != nil || n < 0 {
			return b, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid count %q", count)
		}
		return b.Repeat(rb.Text(text), n), nil
	}

	text, err := c.Prompter.Input("Text", nonEmpty)
	if err != nil {
		return b, err
	}
	switch step {
	case StepLiteral:
		return b.Literal(text), nil
	case StepRaw:
		return b.Raw(text), nil
	case StepRange:
		return b.Range(text), nil
	case StepInvertedRange:
		return b.InvertedRange(text), nil
	case StepOneOrMore:
		return b.OneOrMore(rb.Text(text)), nil
	case StepZeroOrMore:
		return b.ZeroOrMore(rb.Text(text)), nil
	case StepOptional:
		return b.Optional(rb.Text(text)), nil
	case StepAlternate:
		return rb.Alternate(b, rb.Text(text)), nil
	default:
		return b, fmt.Errorf("unknown step %q", step)
	}
}

func nonEmpty(s string) error {
	if s == "" {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "value is required")
	}
	return nil
}

func nonNegative(s string) error {
	n, err := cast.ToIntE(s)
	if err != nil {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "%q is not a number", s)
	}
	if n < 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "%d is negative", n)
	}
	return nil
}
