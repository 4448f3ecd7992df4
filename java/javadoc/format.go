package javadoc

import (
	"strings"
)

// Format renders the structure of a document one tag per line: the
// deprecation flag, parameters, return, exceptions, references and
// service declarations.
func Format(doc *Document) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	line := func(parts ...string) {
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteByte('\n')
	}

	if doc.Deprecated {
		line("@deprecated")
	}
	for _, p := range doc.ParamTypeParameters {
		line("@param", "<"+p.Name+">")
	}
	for _, p := range doc.ParamReferences {
		line("@param", p.Name)
	}
	if r := doc.Return; r != nil {
		if r.Empty {
			line("@return", "(no description)")
		} else {
			line("@return")
		}
	}
	for _, e := range doc.ExceptionReferences {
		line("@throws", FormatReference(e))
	}
	for _, ref := range doc.SeeReferences {
		line("@"+ReferenceTag(ref).String(), FormatReference(ref))
	}
	for _, u := range doc.UsesReferences {
		line("@uses", FormatReference(u))
	}
	for _, p := range doc.ProvidesReferences {
		line("@provides", FormatReference(p))
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ReferenceTag returns the tag a reference was written in. Type names
// and string targets only occur in @see.
func ReferenceTag(e Expression) TagKind {
	switch r := e.(type) {
	case *FieldReference:
		return r.Tag
	case *MessageSend:
		return r.Tag
	case *AllocationExpression:
		return r.Tag
	}
	return TagSee
}

// FormatReference writes a reference the way it appears in source,
// e.g. java.util.Map#get(Object) or java.base/java.lang.String.
func FormatReference(e Expression) string {
	var sb strings.Builder
	writeReference(&sb, e)
	return sb.String()
}

func writeReference(sb *strings.Builder, e Expression) {
	switch r := e.(type) {
	case *TypeReference:
		sb.WriteString(strings.Join(r.Tokens, "."))
		for i := 0; i < r.Dims; i++ {
			if r.Varargs && i == r.Dims-1 {
				sb.WriteString("...")
			} else {
				sb.WriteString("[]")
			}
		}
	case *ImplicitTypeReference:
		// the member follows directly after '#'
	case *ModuleReference:
		sb.WriteString(strings.Join(r.Module, "."))
		sb.WriteByte('/')
		if r.Type != nil {
			writeReference(sb, r.Type)
		}
	case *SingleNameReference:
		sb.WriteString(r.Name)
	case *SingleTypeReference:
		sb.WriteString("<" + r.Name + ">")
	case *FieldReference:
		writeReference(sb, r.Receiver)
		sb.WriteByte('#')
		sb.WriteString(r.Name)
	case *MessageSend:
		writeReference(sb, r.Receiver)
		sb.WriteByte('#')
		sb.WriteString(r.Selector)
		writeArguments(sb, r.Arguments)
	case *AllocationExpression:
		writeReference(sb, r.Type)
		sb.WriteByte('#')
		sb.WriteString(strings.Join(r.Qualification, "."))
		writeArguments(sb, r.Arguments)
	case *ArgumentExpression:
		writeReference(sb, r.Type)
		if r.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(r.Name)
		}
	case *FakeReference:
		sb.WriteString(r.Text)
	}
}

func writeArguments(sb *strings.Builder, args []*ArgumentExpression) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeReference(sb, a)
	}
	sb.WriteByte(')')
}
