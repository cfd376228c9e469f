// Package input reads toast descriptions from files and standard input.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/model"
)

// Document is a toast written as a JSON, TOML or YAML file.
// Presentation keys left out keep the defaults passed to Decode.
type Document struct {
	Title         string   `json:"title" toml:"title" yaml:"title"`
	Message       string   `json:"message" toml:"message" yaml:"message"`
	AppName       string   `json:"app_name" toml:"app_name" yaml:"app_name"`
	TextInput     bool     `json:"input" toml:"input" yaml:"input"`
	Combo         []string `json:"combo" toml:"combo" yaml:"combo"`
	ComboSelected string   `json:"combo_selected" toml:"combo_selected" yaml:"combo_selected"`
	// OK and Cancel add a button when present; an empty label selects the default.
	OK     *string `json:"ok" toml:"ok" yaml:"ok"`
	Cancel *string `json:"cancel" toml:"cancel" yaml:"cancel"`

	model.NotificationConfig `yaml:",inline"`
}

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown input format %q (use json, toml or yaml)", s)
}

// DetectFormat picks the format from the file extension, falling back to
// the content: a leading '{' is JSON, a "key:" first line is YAML,
// anything else TOML.
func DetectFormat(name string, data []byte) Format {
	if name != "" && name != StdinName {
		if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), ".")); err == nil {
			return f
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	first, _, _ := bytes.Cut(trimmed, []byte("\n"))
	if bytes.Contains(first, []byte(":")) && !bytes.Contains(first, []byte("=")) {
		return FormatYAML
	}
	return FormatTOML
}

// Decode parses data in the given format on top of defaults.
func Decode(data []byte, format Format, defaults model.NotificationConfig) (*Document, error) {
	doc := &Document{NotificationConfig: defaults}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatTOML:
		err = toml.Unmarshal(data, doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	default:
		return nil, &AdapterError{Source: string(format), Message: "unsupported format"}
	}
	if err != nil {
		return nil, &AdapterError{Source: string(format), Message: "failed to parse toast", Err: err}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the values a decoder cannot.
func (d *Document) Validate() error {
	if d.BackgroundOpacity < 0 || d.BackgroundOpacity > 1 {
		return fmt.Errorf("opacity must be between 0 and 1, got %g", d.BackgroundOpacity)
	}
	if d.ComboSelected != "" && len(d.Combo) == 0 {
		return fmt.Errorf("combo_selected %q given without combo options", d.ComboSelected)
	}
	return nil
}

// Selected returns the preselected combo option, defaulting to the first.
func (d *Document) Selected() string {
	if d.ComboSelected != "" || len(d.Combo) == 0 {
		return d.ComboSelected
	}
	return d.Combo[0]
}

// AdapterError represents a failure to read or parse a toast document.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
