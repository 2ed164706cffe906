package cmdhelper

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ActionFunc is the signature of *cli.Command Action functions.
type ActionFunc func(ctx context.Context, cmd *cli.Command) error

// ActionFuncChain runs handlers in order and stops at the first error.
func ActionFuncChain(handlers ...ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		for _, h := range handlers {
			if err := h(ctx, cmd); err != nil {
				return err
			}
		}
		return nil
	}
}

// ExactArgs returns an error if there are not exactly n args.
func ExactArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		if got := cmd.Args().Len(); got != n {
			return fmt.Errorf("accepts %d arg(s), received %d", n, got)
		}
		return nil
	}
}

// MaximumNArgs returns an error if there are more than n args.
func MaximumNArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		if got := cmd.Args().Len(); got > n {
			return fmt.Errorf("accepts at most %d arg(s), received %d", n, got)
		}
		return nil
	}
}

// NoArgs returns an error if any args are given.
func NoArgs() ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		if args := cmd.Args(); args.Len() > 0 {
			return fmt.Errorf("no args required for %q, received %q", cmd.FullName(), args.First())
		}
		return nil
	}
}
