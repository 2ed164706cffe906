package version_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/appinfo"
	"github.com/wuxler/rxb/pkg/commands/version"
	"github.com/wuxler/rxb/pkg/errdefs"
)

func run(args ...string) (string, error) {
	stdout := &bytes.Buffer{}
	root := &cli.Command{
		Name:     "rxb",
		Writer:   stdout,
		Commands: []*cli.Command{version.New().ToCLI()},
	}
	err := root.Run(context.Background(), append([]string{"rxb", "version"}, args...))
	return stdout.String(), err
}

func TestCommand_Run(t *testing.T) {
	out, err := run()
	require.NoError(t, err)
	assert.Contains(t, out, "Application  : rxb\n")

	out, err = run("--short")
	require.NoError(t, err)
	assert.Equal(t, appinfo.GetVersion().Short()+"\n", out)

	out, err = run("--format", "json")
	require.NoError(t, err)
	var v appinfo.Version
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, appinfo.GetVersion().Version, v.Version)
}

func TestCommand_Errors(t *testing.T) {
	_, err := run("--format", "xml")
	assert.ErrorIs(t, err, errdefs.ErrUnsupported)

	_, err = run("extra")
	assert.ErrorContains(t, err, "no args required")
}
