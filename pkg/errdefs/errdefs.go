// Package errdefs defines general error classes and error operations.
package errdefs

import (
	"errors"
	"fmt"
)

// Newf joins the base error class with a formatted error created by fmt.Errorf.
func Newf(base error, format string, args ...any) error {
	return errors.Join(base, fmt.Errorf(format, args...))
}

// NewE joins the base error class with err. It returns err as is when err is
// nil or already of the base class.
func NewE(base error, err error) error {
	if err == nil || errors.Is(err, base) {
		return err
	}
	return errors.Join(base, err)
}

// IsAny reports whether err matches any of the targets.
func IsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
