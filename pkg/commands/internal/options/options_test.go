package options_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/rxb/pkg/commands/internal/options"
	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/xlog"
)

func TestCatalogOptions_NewCatalog(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "recipes/image.yaml", []byte(`
recipes:
  - name: image
    anchored: true
    pattern: [{ref: oci.name}, {optional: [":", {ref: oci.tag}]}]
`), 0o644))

	o := options.NewCatalogOptions()
	o.Fs = fsys
	o.Recipes = []string{"recipes"}

	cat, err := o.NewCatalog(context.Background())
	require.NoError(t, err)
	assert.True(t, cat.Has("oci.domain"))

	re, err := cat.Compile(context.Background(), "image")
	require.NoError(t, err)
	assert.True(t, re.MatchString("docker.io/library/ubuntu:22.04"))
	assert.False(t, re.MatchString("docker.io/library/Ubuntu"))

	o.Builtins = false
	cat, err = o.NewCatalog(context.Background())
	require.NoError(t, err)
	_, err = cat.Render(context.Background(), "image")
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestCommonOptions_LogConfig(t *testing.T) {
	o := options.NewCommonOptions()
	c := o.LogConfig()
	assert.Equal(t, xlog.LevelInfo, c.Level)
	assert.Equal(t, xlog.FormatText, c.Format)

	o.Debug = true
	o.LogFile = "/var/log/rxb.log"
	c = o.LogConfig()
	assert.Equal(t, xlog.LevelDebug, c.Level)
	assert.Equal(t, "/var/log/rxb.log", c.Path)

	o.LogFormat = "xml"
	_, err := o.Init(context.Background())
	assert.Error(t, err)
}

func TestServerOptions_Validate(t *testing.T) {
	testcases := []struct {
		name    string
		listen  string
		timeout time.Duration
		wantErr bool
	}{
		{name: "default", listen: options.DefaultListenAddress, timeout: time.Second},
		{name: "every interface", listen: ":9000"},
		{name: "ipv6", listen: "[::1]:0"},
		{name: "missing port", listen: "localhost", wantErr: true},
		{name: "empty port", listen: "localhost:", wantErr: true},
		{name: "port out of range", listen: "localhost:70000", wantErr: true},
		{name: "named port", listen: "localhost:http", wantErr: true},
		{name: "negative timeout", listen: ":80", timeout: -time.Second, wantErr: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			o := &options.ServerOptions{Listen: tc.listen, ShutdownTimeout: tc.timeout}
			err := o.Validate(context.Background(), nil)
			if tc.wantErr {
				assert.ErrorIs(t, err, errdefs.ErrInvalidParameter)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestServerOptions_Config(t *testing.T) {
	o := options.NewServerOptions()
	cfg := o.Config()
	assert.Equal(t, "127.0.0.1:8080", cfg.Address)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}
