// Package options defines the flag groups shared by the commands.
package options

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/util/homedir"
	"github.com/wuxler/rxb/pkg/xlog"
)

// CommonFlagCategory is the category of the common flags.
const CommonFlagCategory = "[Common]"

// NewCommonOptions returns a *CommonOptions with default values.
func NewCommonOptions() *CommonOptions {
	return &CommonOptions{
		LogFormat: xlog.FormatText,
	}
}

// CommonOptions are options that are common to all commands.
type CommonOptions struct {
	Debug     bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	LogFile   string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Flags returns the []cli.Flag related to current options.
func (o *CommonOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Sources:     cli.EnvVars("RXB_DEBUG"),
			Usage:       "enable debug logs",
			Destination: &o.Debug,
			Category:    CommonFlagCategory,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Sources:     cli.EnvVars("RXB_LOG_FILE"),
			Usage:       "also write JSON logs to the rotated `FILE`",
			Destination: &o.LogFile,
			Category:    CommonFlagCategory,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Sources:     cli.EnvVars("RXB_LOG_FORMAT"),
			Usage:       `console log format, oneof ["text", "json"]`,
			Value:       o.LogFormat,
			Destination: &o.LogFormat,
			Category:    CommonFlagCategory,
		},
	}
}

// LogConfig returns the logger configuration described by the options.
func (o *CommonOptions) LogConfig() xlog.Config {
	c := xlog.NewConfig()
	if o.Debug {
		c.Level = xlog.LevelDebug
	}
	c.Format = o.LogFormat
	c.Path = o.LogFile
	return c
}

// Init installs the configured logger as default and in the returned context.
func (o *CommonOptions) Init(ctx context.Context) (context.Context, error) {
	c := o.LogConfig()
	if err := c.Validate(); err != nil {
		return ctx, err
	}
	path, err := homedir.Expand(c.Path)
	if err != nil {
		return ctx, err
	}
	c.Path = path
	logger := xlog.New(c)
	xlog.SetDefault(logger)
	return xlog.IntoContext(ctx, logger), nil
}
