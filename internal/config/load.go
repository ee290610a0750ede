// Package config turns declarative specifications into group forests.
//
// Specifications are read from YAML, JSON or HCL into api.Config, then
// Build resolves types and nests each group's parent key as the
// concatenation of every ancestor's "by" fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/regroup/api"
)

var (
	// ErrUnsupportedFormat is returned for specification files of unknown type.
	ErrUnsupportedFormat = errors.New("unsupported specification format")
	// ErrUnknownObjectClass is returned when object_class names neither a
	// built-in strategy nor a registered constructor.
	ErrUnknownObjectClass = errors.New("unknown object class")
)

// Format identifies a specification syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and parses a specification file.
func Load(path string) (*api.Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specification: %w", err)
	}
	cfg, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format. filename is only used in diagnostics.
func Parse(data []byte, format Format, filename string) (*api.Config, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatHCL:
		return ParseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}
