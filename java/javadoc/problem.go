package javadoc

import (
	"fmt"
	"sort"
)

// Span is a range of source offsets. End is the offset of the last
// character, not one past it.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Severity defines the importance of a problem.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SevInfo, nil
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// ProblemKind identifies a diagnosable comment defect.
type ProblemKind uint16

const (
	UnknownProblem ProblemKind = 0

	// Tags
	InvalidTag                       ProblemKind = 100
	UnexpectedTag                    ProblemKind = 101
	DuplicateReturn                  ProblemKind = 102
	UnterminatedInlineTag            ProblemKind = 103
	MissingTagDescription            ProblemKind = 104
	MissingDescriptionAfterReference ProblemKind = 105
	MissingIdentifier                ProblemKind = 106

	// Parameters and exceptions
	MissingParamName          ProblemKind = 200
	InvalidParamTagName       ProblemKind = 201
	InvalidParamTypeParameter ProblemKind = 202
	MissingThrowsClassName    ProblemKind = 203
	InvalidThrowsClass        ProblemKind = 204
	MissingUsesClassName      ProblemKind = 205
	InvalidUsesClass          ProblemKind = 206
	MissingProvidesClassName  ProblemKind = 207
	InvalidProvidesClass      ProblemKind = 208

	// References
	MissingReference               ProblemKind = 300
	InvalidReference               ProblemKind = 301
	InvalidSeeURLReference         ProblemKind = 302
	InvalidSeeHref                 ProblemKind = 303
	InvalidSeeArgs                 ProblemKind = 304
	MalformedSeeReference          ProblemKind = 305
	MissingHashCharacter           ProblemKind = 306
	InvalidMemberTypeQualification ProblemKind = 307
	InvalidValueReference          ProblemKind = 308
	UnexpectedText                 ProblemKind = 309

	// Snippets
	InvalidSnippet           ProblemKind = 400
	SnippetMissingColon      ProblemKind = 401
	SnippetContentNewLine    ProblemKind = 402
	DuplicateRegion          ProblemKind = 403
	RegionNotClosed          ProblemKind = 404
	SnippetAttributeConflict ProblemKind = 405
)

type problemInfo struct {
	id       string
	format   string
	severity Severity
}

var problemTable = map[ProblemKind]problemInfo{
	UnknownProblem:                   {"unknown", "unknown problem", SevError},
	InvalidTag:                       {"invalid_tag", "invalid tag", SevError},
	UnexpectedTag:                    {"unexpected_tag", "unexpected tag", SevWarning},
	DuplicateReturn:                  {"duplicate_return", "duplicate tag for return type", SevError},
	UnterminatedInlineTag:            {"unterminated_inline_tag", "missing closing brace for inline tag", SevError},
	MissingTagDescription:            {"missing_tag_description", "description expected after @%s", SevWarning},
	MissingDescriptionAfterReference: {"missing_description", "description expected after this reference", SevWarning},
	MissingIdentifier:                {"missing_identifier", "missing identifier", SevError},
	MissingParamName:                 {"missing_param_name", "missing parameter name", SevError},
	InvalidParamTagName:              {"invalid_param_name", "invalid parameter name", SevError},
	InvalidParamTypeParameter:        {"invalid_type_parameter", "invalid type parameter name", SevError},
	MissingThrowsClassName:           {"missing_throws_class", "missing class name", SevError},
	InvalidThrowsClass:               {"invalid_throws_class", "invalid class name", SevError},
	MissingUsesClassName:             {"missing_uses_class", "missing service type name", SevError},
	InvalidUsesClass:                 {"invalid_uses_class", "invalid service type name", SevError},
	MissingProvidesClassName:         {"missing_provides_class", "missing service type name", SevError},
	InvalidProvidesClass:             {"invalid_provides_class", "invalid service type name", SevError},
	MissingReference:                 {"missing_reference", "missing reference", SevError},
	InvalidReference:                 {"invalid_reference", "invalid reference", SevError},
	InvalidSeeURLReference:           {"invalid_url_reference", "invalid URL reference, enclose the URL in <a href>", SevError},
	InvalidSeeHref:                   {"invalid_href", "malformed link reference", SevError},
	InvalidSeeArgs:                   {"invalid_arguments", "invalid parameters declaration", SevError},
	MalformedSeeReference:            {"malformed_reference", "malformed reference (missing end space separator)", SevError},
	MissingHashCharacter:             {"missing_hash", "missing # in reference to %s", SevError},
	InvalidMemberTypeQualification:   {"invalid_member_qualification", "invalid member type qualification", SevError},
	InvalidValueReference:            {"invalid_value_reference", "only static field reference is allowed for @value", SevError},
	UnexpectedText:                   {"unexpected_text", "unexpected text", SevError},
	InvalidSnippet:                   {"invalid_snippet", "invalid snippet tag", SevError},
	SnippetMissingColon:              {"snippet_missing_colon", "snippet is missing a colon", SevError},
	SnippetContentNewLine:            {"snippet_content_newline", "snippet content must start on a new line", SevError},
	DuplicateRegion:                  {"duplicate_region", "duplicate region %s", SevError},
	RegionNotClosed:                  {"region_not_closed", "snippet region not closed", SevError},
	SnippetAttributeConflict:         {"snippet_attribute_conflict", "regex and substring cannot be used together", SevError},
}

// ID returns the stable snake_case name used in configuration files.
func (k ProblemKind) ID() string {
	if info, ok := problemTable[k]; ok {
		return info.id
	}
	return fmt.Sprintf("problem_%d", uint16(k))
}

// DefaultSeverity is the severity a problem gets unless overridden.
func (k ProblemKind) DefaultSeverity() Severity {
	if info, ok := problemTable[k]; ok {
		return info.severity
	}
	return SevError
}

func (k ProblemKind) String() string {
	return k.ID()
}

// LookupProblem finds a problem kind by ID.
func LookupProblem(id string) (ProblemKind, bool) {
	for k, info := range problemTable {
		if info.id == id {
			return k, true
		}
	}
	return UnknownProblem, false
}

// Problem is a diagnosable defect found in a comment.
type Problem struct {
	Kind     ProblemKind
	Severity Severity
	Span     Span
	Args     []string
}

// Message renders the problem text with its arguments.
func (p Problem) Message() string {
	info, ok := problemTable[p.Kind]
	if !ok {
		return p.Kind.ID()
	}
	if len(p.Args) == 0 {
		return info.format
	}
	args := make([]any, len(p.Args))
	for i, a := range p.Args {
		args[i] = a
	}
	return fmt.Sprintf(info.format, args...)
}

func (p Problem) String() string {
	return fmt.Sprintf("%d-%d: %s: %s", p.Span.Start, p.Span.End, p.Severity, p.Message())
}

// Reporter receives problems as the parser finds them.
type Reporter interface {
	Report(Problem)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Problem)

func (f ReporterFunc) Report(p Problem) { f(p) }

// ProblemList collects problems in the order they were reported.
type ProblemList struct {
	items []Problem
}

func (l *ProblemList) Report(p Problem) {
	l.items = append(l.items, p)
}

func (l *ProblemList) Len() int {
	return len(l.items)
}

// Items returns the collected problems. The slice must not be modified.
func (l *ProblemList) Items() []Problem {
	return l.items
}

// Kinds lists the kind of every problem, in order.
func (l *ProblemList) Kinds() []ProblemKind {
	kinds := make([]ProblemKind, len(l.items))
	for i, p := range l.items {
		kinds[i] = p.Kind
	}
	return kinds
}

// Count returns how many problems of kind were reported.
func (l *ProblemList) Count(kind ProblemKind) int {
	n := 0
	for _, p := range l.items {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

func (l *ProblemList) HasErrors() bool {
	for _, p := range l.items {
		if p.Severity >= SevError {
			return true
		}
	}
	return false
}

// Sort orders problems by position, then kind.
func (l *ProblemList) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		a, b := l.items[i], l.items[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.Kind < b.Kind
	})
}

func (l *ProblemList) Reset() {
	l.items = l.items[:0]
}
