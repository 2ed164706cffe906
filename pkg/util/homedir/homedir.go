// Package homedir expands "~" prefixed paths.
package homedir

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Get returns the home directory of the current user, from the environment
// first and from the user database otherwise.
func Get() (string, error) {
	home, envErr := os.UserHomeDir()
	if envErr == nil && home != "" {
		return home, nil
	}
	u, userErr := user.Current()
	if userErr == nil && u.HomeDir != "" {
		return u.HomeDir, nil
	}
	return "", fmt.Errorf("unable to determine home directory: %w", errors.Join(envErr, userErr))
}

// Expand replaces a leading "~" of path by the home directory. Paths of
// other users, like "~bob/x", are not supported.
func Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", fmt.Errorf("cannot expand user-specific home dir in %q", path)
	}
	home, err := Get()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// ExpandAll expands every path with Expand.
func ExpandAll(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		p, err := Expand(path)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, p)
	}
	return expanded, nil
}
