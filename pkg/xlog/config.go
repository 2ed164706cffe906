package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats of the console handler.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewConfig returns the default configuration: info level text logs written to
// stderr.
func NewConfig() Config {
	return Config{
		Level:        LevelInfo,
		AddSource:    true,
		AttrReplacer: NormalizeSourceAttrReplacer(),
		Format:       FormatText,
		Writer:       os.Stderr,
		MaxSize:      30,
	}
}

// Config configures the handlers of a Logger.
type Config struct {
	// Level is the minimum level logged.
	Level Level
	// AddSource adds the file and line of the log call.
	AddSource bool
	// AttrReplacer rewrites attributes before they are logged.
	AttrReplacer AttrReplacer

	// Format is the console output format, "text" or "json".
	Format string
	// Writer is the console output.
	Writer io.Writer

	// Path is the log file. No file is written when empty. The file always
	// receives JSON records and is rotated by size.
	Path string
	// MaxSize is the size in megabytes a log file reaches before rotation.
	MaxSize int
	// MaxAge is the number of days rotated files are kept, 0 keeps them forever.
	MaxAge int
	// MaxBackups is the number of rotated files kept, 0 keeps them all.
	MaxBackups int
	// Compress gzips rotated files.
	Compress bool
}

// Validate checks the format name.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported log format %q, want %q or %q", c.Format, FormatText, FormatJSON)
	}
}

// BuildHandler creates the handler described by c.
func (c *Config) BuildHandler() LeveledHandler {
	opts := c.handlerOptions()
	handlers := []LeveledHandler{}

	if strings.EqualFold(c.Format, FormatJSON) {
		handlers = append(handlers, NewLeveledHandler(JSONHandlerCreator, c.Writer, opts))
	} else {
		handlers = append(handlers, NewLeveledHandler(TextHandlerCreator, c.Writer, opts))
	}
	if fw := c.fileWriter(); fw != nil {
		handlers = append(handlers, NewLeveledHandler(JSONHandlerCreator, fw, opts))
	}
	if len(handlers) == 1 {
		return handlers[0]
	}
	return MultiHandler(handlers...)
}

func (c *Config) fileWriter() io.Writer {
	if c.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

func (c *Config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}
}
