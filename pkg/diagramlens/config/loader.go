package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a settings document.
type Format string

// Supported settings encodings.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding of a settings file from its extension,
// case-insensitively.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Parse decodes a settings document. An empty document yields empty
// Values, which resolve to the defaults.
func Parse(data []byte, f Format) (Values, error) {
	var doc map[string]any
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		if len(strings.TrimSpace(string(data))) == 0 {
			return NewValues(nil), nil
		}
		err = json.Unmarshal(data, &doc)
	default:
		return Values{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return Values{}, fmt.Errorf("decode %s settings: %w", f, err)
	}
	return NewValues(doc), nil
}

// FromFile reads and decodes a .yaml, .yml or .json settings file.
func FromFile(path string) (Values, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Values{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Values{}, fmt.Errorf("read settings: %w", err)
	}
	v, err := Parse(data, f)
	if err != nil {
		return Values{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
