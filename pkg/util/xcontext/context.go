// Package xcontext holds the cancellation checks of the step loops.
package xcontext

import (
	"context"
	"fmt"
)

// Check returns nil while ctx is live. Once ctx is done it returns the
// cancellation cause, prefixed by the operation described by format and
// args when format is not empty.
func Check(ctx context.Context, format string, args ...any) error {
	if ctx.Err() == nil {
		return nil
	}
	cause := context.Cause(ctx)
	if format == "" {
		return cause
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), cause)
}
