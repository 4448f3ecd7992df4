package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jdoc/check"
)

type JSONEncoder struct {
	w   io.Writer
	res *check.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(res *check.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildFileView(e.res), "", "  ")
}
