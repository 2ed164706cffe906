// Package cmdhelper provides helpers shared by the cli commands.
package cmdhelper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wuxler/rxb/pkg/errdefs"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Fprintf is fmt.Fprintf ending with a newline and ignoring write errors.
func Fprintf(w io.Writer, format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	_, _ = fmt.Fprintf(w, format, args...)
}

// PrettifyJSON indents JSON bytes or strings, and marshals anything else
// with indents.
func PrettifyJSON(data any) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return prettifyJSONBytes(v)
	case string:
		return prettifyJSONBytes([]byte(v))
	default:
		return json.MarshalIndent(data, "", "  ")
	}
}

func prettifyJSONBytes(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to prettify: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateFormat returns an errdefs.ErrUnsupported error for unknown formats.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatYAML, "yml":
		return nil
	default:
		return errdefs.Newf(errdefs.ErrUnsupported, "unsupported output format %q, oneof %q", format, Formats)
	}
}

// Write encodes v to w in format. text is called for the text format.
func Write(w io.Writer, format string, v any, text func(w io.Writer) error) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := PrettifyJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
