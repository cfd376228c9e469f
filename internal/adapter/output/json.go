package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes a Result as a single JSON object.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes r unless it has nothing to report.
func (f *JSONFormatter) Format(w io.Writer, r Result) error {
	if !r.Pressed() && !f.opts.All {
		return nil
	}
	return json.NewEncoder(w).Encode(r)
}
