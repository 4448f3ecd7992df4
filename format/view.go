package format

import (
	"github.com/dhamidi/jdoc/check"
	"github.com/dhamidi/jdoc/java/javadoc"
)

// The view types are shared by the JSON and YAML encoders.

type fileView struct {
	Path        string           `json:"path" yaml:"path"`
	Comments    []commentView    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Diagnostics []diagnosticView `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type commentView struct {
	Line           int             `json:"line" yaml:"line"`
	Column         int             `json:"column" yaml:"column"`
	Markdown       bool            `json:"markdown,omitempty" yaml:"markdown,omitempty"`
	Deprecated     bool            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Valid          bool            `json:"valid" yaml:"valid"`
	Tags           []tagView       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Params         []string        `json:"params,omitempty" yaml:"params,omitempty"`
	TypeParameters []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Return         *returnView     `json:"return,omitempty" yaml:"return,omitempty"`
	Exceptions     []string        `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	References     []referenceView `json:"references,omitempty" yaml:"references,omitempty"`
	Uses           []string        `json:"uses,omitempty" yaml:"uses,omitempty"`
	Provides       []string        `json:"provides,omitempty" yaml:"provides,omitempty"`
}

type tagView struct {
	Name   string `json:"name" yaml:"name"`
	Inline bool   `json:"inline,omitempty" yaml:"inline,omitempty"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
}

type returnView struct {
	Empty bool `json:"empty" yaml:"empty"`
}

type referenceView struct {
	Tag   string `json:"tag" yaml:"tag"`
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

type diagnosticView struct {
	Kind      string `json:"kind" yaml:"kind"`
	Severity  string `json:"severity" yaml:"severity"`
	Message   string `json:"message" yaml:"message"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"endLine" yaml:"endLine"`
	EndColumn int    `json:"endColumn" yaml:"endColumn"`
}

func buildFileView(res *check.Result) fileView {
	v := fileView{Path: res.Path}
	for _, c := range res.Documents {
		cv := buildCommentView(c.Document)
		cv.Line, cv.Column = c.Pos.Line, c.Pos.Column
		v.Comments = append(v.Comments, cv)
	}
	for _, d := range res.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, diagnosticView{
			Kind:      d.Kind,
			Severity:  d.Severity.String(),
			Message:   d.Message,
			Line:      d.Start.Line,
			Column:    d.Start.Column,
			EndLine:   d.End.Line,
			EndColumn: d.End.Column,
		})
	}
	return v
}

func buildCommentView(doc *javadoc.Document) commentView {
	v := commentView{
		Markdown:   doc.Markdown,
		Deprecated: doc.Deprecated,
		Valid:      doc.Valid,
	}
	for _, t := range doc.Tags {
		name := t.Name
		if name == "" {
			name = t.Kind.String()
		}
		v.Tags = append(v.Tags, tagView{Name: name, Inline: t.Inline, Valid: t.Valid, Start: t.Span.Start, End: t.Span.End})
	}
	for _, p := range doc.ParamReferences {
		v.Params = append(v.Params, p.Name)
	}
	for _, p := range doc.ParamTypeParameters {
		v.TypeParameters = append(v.TypeParameters, p.Name)
	}
	if doc.Return != nil {
		v.Return = &returnView{Empty: doc.Return.Empty}
	}
	for _, e := range doc.ExceptionReferences {
		v.Exceptions = append(v.Exceptions, javadoc.FormatReference(e))
	}
	for _, ref := range doc.SeeReferences {
		span := ref.Pos()
		v.References = append(v.References, referenceView{
			Tag:   javadoc.ReferenceTag(ref).String(),
			Kind:  referenceKind(ref),
			Text:  javadoc.FormatReference(ref),
			Start: span.Start,
			End:   span.End,
		})
	}
	for _, u := range doc.UsesReferences {
		v.Uses = append(v.Uses, javadoc.FormatReference(u))
	}
	for _, p := range doc.ProvidesReferences {
		v.Provides = append(v.Provides, javadoc.FormatReference(p))
	}
	return v
}

func referenceKind(e javadoc.Expression) string {
	switch e.(type) {
	case *javadoc.TypeReference:
		return "type"
	case *javadoc.ModuleReference:
		return "module"
	case *javadoc.FieldReference:
		return "field"
	case *javadoc.MessageSend:
		return "method"
	case *javadoc.AllocationExpression:
		return "constructor"
	case *javadoc.FakeReference:
		return "text"
	}
	return "unknown"
}
