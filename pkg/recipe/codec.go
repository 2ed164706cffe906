package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wuxler/rxb/pkg/errdefs"
)

const (
	// FormatYAML is the YAML recipe format.
	FormatYAML = "yaml"
	// FormatJSON is the JSON recipe format.
	FormatJSON = "json"
)

// UnmarshalYAML implements yaml.Unmarshaler. Steps may be written as a
// sequence of steps, a single step mapping or a plain string.
func (s *Steps) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = Steps{}
			return nil
		}
		*s = Steps{LiteralStep(value.Value)}
		return nil
	case yaml.MappingNode:
		var step Step
		if err := value.Decode(&step); err != nil {
			return err
		}
		*s = Steps{step}
		return nil
	case yaml.SequenceNode:
		steps := []Step{}
		if err := value.Decode(&steps); err != nil {
			return err
		}
		*s = steps
		return nil
	default:
		return errdefs.Newf(errdefs.ErrInvalidParameter,
			"line %d: steps must be a string, a step or a list of steps", value.Line)
	}
}

// UnmarshalJSON implements json.Unmarshaler with the same shapes as
// UnmarshalYAML.
func (s *Steps) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "empty steps")
	}
	switch data[0] {
	case 'n':
		*s = Steps{}
		return nil
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Steps{LiteralStep(text)}
		return nil
	case '{':
		var step Step
		if err := json.Unmarshal(data, &step); err != nil {
			return err
		}
		*s = Steps{step}
		return nil
	case '[':
		steps := []Step{}
		if err := json.Unmarshal(data, &steps); err != nil {
			return err
		}
		*s = steps
		return nil
	default:
		return errdefs.Newf(errdefs.ErrInvalidParameter,
			"steps must be a string, a step or a list of steps, got %s", data)
	}
}

// FormatFromPath guesses the recipe format from the file extension, YAML
// being the default.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses and validates a recipe document.
func Decode(data []byte, format string) (*Document, error) {
	doc := &Document{}
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, errdefs.NewE(errdefs.ErrInvalidParameter, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, errdefs.NewE(errdefs.ErrInvalidParameter, err)
		}
	default:
		return nil, errdefs.Newf(errdefs.ErrUnsupported, "unsupported recipe format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads and decodes the recipe document at path from fsys.
func LoadFile(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe file %s: %w", path, err)
	}
	doc, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("invalid recipe file %s: %w", path, err)
	}
	return doc, nil
}
