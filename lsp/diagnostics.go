package lsp

import (
	"unicode/utf16"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jdoc/check"
	"github.com/dhamidi/jdoc/java/javadoc"
)

// Diagnostics converts the diagnostics of res, which was computed from
// src, to protocol form. Positions count UTF-16 code units.
func Diagnostics(src []rune, res *check.Result) []protocol.Diagnostic {
	lines := javadoc.ComputeLines(src)
	out := make([]protocol.Diagnostic, 0, len(res.Diagnostics))
	source := lsName
	for _, d := range res.Diagnostics {
		start, err := Position(src, lines, d.Start.Offset)
		if err != nil {
			log.Warningf("%s: dropping diagnostic: %s", res.Path, err)
			continue
		}
		// Spans are inclusive.
		end, err := Position(src, lines, min(d.End.Offset+1, len(src)))
		if err != nil {
			log.Warningf("%s: dropping diagnostic: %s", res.Path, err)
			continue
		}
		sev := severity(d.Severity)
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &sev,
			Code:     &protocol.IntegerOrString{Value: d.Kind},
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

// Position converts a rune offset of src to a 0-based line and UTF-16
// character.
func Position(src []rune, lines javadoc.LineTable, offset int) (protocol.Position, error) {
	offset = max(0, min(offset, len(src)))
	line := lines.LineNumber(offset)
	units := 0
	for i := lines.LineStart(line); i < offset; i++ {
		if n := utf16.RuneLen(src[i]); n > 0 {
			units += n
		} else {
			units++
		}
	}
	l, err := safecast.Conv[uint32](line - 1)
	if err != nil {
		return protocol.Position{}, err
	}
	c, err := safecast.Conv[uint32](units)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: l, Character: c}, nil
}

func severity(s javadoc.Severity) protocol.DiagnosticSeverity {
	switch s {
	case javadoc.SevError:
		return protocol.DiagnosticSeverityError
	case javadoc.SevWarning:
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityInformation
}
