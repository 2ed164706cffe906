package options

import (
	"context"
	"net"
	"time"

	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/errdefs"
	httpserver "github.com/wuxler/rxb/pkg/server"
)

const (
	// ServerFlagCategory is the category of the server flags.
	ServerFlagCategory = "[Server]"

	// DefaultListenAddress is the address the pattern API listens on.
	DefaultListenAddress = "127.0.0.1:8080"
)

// NewServerOptions returns a new *ServerOptions with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Listen:          DefaultListenAddress,
		ShutdownTimeout: httpserver.DefaultShutdownTimeout,
	}
}

// ServerOptions configures the pattern API listener.
type ServerOptions struct {
	// Listen is the host:port address, an empty host listens on every
	// interface.
	Listen          string
	ShutdownTimeout time.Duration
}

// Flags returns the []cli.Flag related to current options.
func (o *ServerOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "listen",
			Aliases:     []string{"l"},
			Usage:       "address to listen on, as host:port",
			Sources:     cli.EnvVars("RXB_LISTEN"),
			Value:       o.Listen,
			Destination: &o.Listen,
			Category:    ServerFlagCategory,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "time to wait for in-flight requests on shutdown",
			Sources:     cli.EnvVars("RXB_SHUTDOWN_TIMEOUT"),
			Value:       o.ShutdownTimeout,
			Destination: &o.ShutdownTimeout,
			Category:    ServerFlagCategory,
		},
	}
}

// Validate checks the listen address and the shutdown timeout. Its signature
// lets commands chain it before their action.
func (o *ServerOptions) Validate(_ context.Context, _ *cli.Command) error {
	_, port, err := net.SplitHostPort(o.Listen)
	if err != nil {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "invalid listen address %q: %s", o.Listen, err)
	}
	if n, err := cast.ToIntE(port); port == "" || err != nil || n < 0 || n > 65535 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "invalid listen port %q", port)
	}
	if o.ShutdownTimeout < 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "negative shutdown timeout %s", o.ShutdownTimeout)
	}
	return nil
}

// Config returns the listener settings of the pattern API.
func (o *ServerOptions) Config() httpserver.Config {
	return httpserver.Config{
		Address:         o.Listen,
		ShutdownTimeout: o.ShutdownTimeout,
	}
}
