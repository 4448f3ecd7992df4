package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/jdoc/check"
	"github.com/dhamidi/jdoc/java/javadoc"
)

var (
	pathColor    = color.New(color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	kindColor    = color.New(color.Faint)
	tagColor     = color.New(color.FgGreen)
)

// TextEncoder writes compiler-style diagnostics, optionally preceded by
// the structure of every comment. Colors follow color.NoColor.
type TextEncoder struct {
	w         io.Writer
	documents bool
	res       *check.Result
}

func NewTextEncoder(w io.Writer, documents bool) *TextEncoder {
	return &TextEncoder{w: w, documents: documents}
}

func (e *TextEncoder) Encode(res *check.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	res := e.res
	if e.documents {
		for _, c := range res.Documents {
			fmt.Fprintf(&buf, "%s %s\n", pathColor.Sprintf("%s:%d:%d:", res.Path, c.Pos.Line, c.Pos.Column), commentLabel(c.Document))
			if summary := javadoc.Format(c.Document); summary != "" {
				for _, line := range strings.Split(summary, "\n") {
					tag, rest, found := strings.Cut(line, " ")
					if !found {
						fmt.Fprintf(&buf, "    %s\n", tagColor.Sprint(tag))
						continue
					}
					fmt.Fprintf(&buf, "    %s %s\n", tagColor.Sprint(tag), rest)
				}
			}
		}
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(&buf, "%s %s %s %s\n",
			pathColor.Sprintf("%s:%d:%d:", d.Path, d.Start.Line, d.Start.Column),
			severityColor(d.Severity).Sprintf("%s:", d.Severity),
			d.Message,
			kindColor.Sprintf("[%s]", d.Kind))
	}
	return buf.Bytes(), nil
}

func commentLabel(doc *javadoc.Document) string {
	var parts []string
	if doc.Markdown {
		parts = append(parts, "markdown")
	}
	parts = append(parts, "comment")
	if !doc.Valid {
		parts = append(parts, "(invalid)")
	}
	return strings.Join(parts, " ")
}

func severityColor(s javadoc.Severity) *color.Color {
	switch s {
	case javadoc.SevError:
		return errorColor
	case javadoc.SevWarning:
		return warningColor
	}
	return infoColor
}
