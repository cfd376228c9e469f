package input

import (
	"io"
	"os"

	"github.com/jmylchreest/toastui/internal/model"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// MaxDocumentSize caps how much of a document is read.
const MaxDocumentSize = 1 << 20

// Reader loads documents from a path or standard input.
type Reader struct {
	stdin io.Reader
}

// NewReader creates a Reader using os.Stdin for "-".
func NewReader() *Reader {
	return &Reader{stdin: os.Stdin}
}

// NewReaderWithStdin creates a Reader with a custom standard input.
func NewReaderWithStdin(r io.Reader) *Reader {
	return &Reader{stdin: r}
}

// Load reads the document at name ("-" for standard input). An empty
// format is detected from the name and content.
func (r *Reader) Load(name string, format Format, defaults model.NotificationConfig) (*Document, error) {
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &AdapterError{Source: name, Message: "empty document"}
	}
	if format == "" {
		format = DetectFormat(name, data)
	}
	return Decode(data, format, defaults)
}

func (r *Reader) read(name string) ([]byte, error) {
	var src io.Reader
	if name == StdinName {
		src = r.stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, &AdapterError{Source: name, Message: "failed to open", Err: err}
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(io.LimitReader(src, MaxDocumentSize+1))
	if err != nil {
		return nil, &AdapterError{Source: name, Message: "failed to read", Err: err}
	}
	if len(data) > MaxDocumentSize {
		return nil, &AdapterError{Source: name, Message: "document too large"}
	}
	return data, nil
}
