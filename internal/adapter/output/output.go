// Package output formats the outcome of a toast for scripts.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Result is what a toast reports once it closes.
type Result struct {
	ID string `json:"id"`
	// Reason is ok, cancel, expired or dismissed.
	Reason string `json:"reason"`
	// Text and Selected are set when a button was pressed.
	Text     string `json:"text,omitempty"`
	Selected string `json:"selected,omitempty"`
}

// Pressed reports whether the toast closed through a button.
func (r Result) Pressed() bool {
	return r.Reason == "ok" || r.Reason == "cancel"
}

// Formatter writes a Result.
type Formatter interface {
	Format(w io.Writer, r Result) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom text/template for plain format
	// All also prints results of toasts that closed without a button.
	All bool
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown output format %q (use plain or json)", format)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
	}
}
