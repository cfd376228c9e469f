package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// PlainFormatter writes key=value lines, or the custom template when set.
//
// OK prints:
//
//	text=<text field>
//	selected=<drop-down choice>
//
// Cancel prints "cancel". Other reasons print nothing unless All is set,
// in which case the reason is printed.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid output template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes r.
func (f *PlainFormatter) Format(w io.Writer, r Result) error {
	if !r.Pressed() && !f.opts.All {
		return nil
	}

	if f.template != nil {
		if err := f.template.Execute(w, r); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder
	switch r.Reason {
	case "ok":
		sb.WriteString("text=" + r.Text + "\n")
		sb.WriteString("selected=" + r.Selected + "\n")
	default:
		sb.WriteString(r.Reason + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
