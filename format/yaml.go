package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jdoc/check"
)

// YAMLEncoder writes one YAML document per result.
type YAMLEncoder struct {
	w   io.Writer
	res *check.Result
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(res *check.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, "---\n"); err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildFileView(e.res)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
