// Package format renders check results as JSON, YAML or text.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/jdoc/check"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(res *check.Result) error
}

// Names lists the formats New accepts.
var Names = []string{"text", "json", "yaml"}

// New returns the encoder called name writing to w. Text output lists
// comment structure when documents is set, otherwise diagnostics only.
func New(name string, w io.Writer, documents bool) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "text":
		return NewTextEncoder(w, documents), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}
