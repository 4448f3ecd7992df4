// Package javadoc parses Javadoc comments into a document of syntactic
// references and reports malformed tags through a Reporter.
package javadoc

// Expression is implemented by every reference node.
type Expression interface {
	Pos() Span
	expr()
}

// Document is the structured form of one documentation comment.
type Document struct {
	Start    int
	End      int
	Markdown bool

	Deprecated bool

	// SeeReferences holds @see, {@link}, {@linkplain} and {@value}
	// targets as well as markdown links, in source order.
	SeeReferences       []Expression
	ExceptionReferences []*TypeReference
	ParamReferences     []*SingleNameReference
	ParamTypeParameters []*SingleTypeReference
	InvalidParameters   []*SingleNameReference
	UsesReferences      []*TypeReference
	ProvidesReferences  []*TypeReference

	Return *ReturnStatement

	// InheritedPositions lists the spans of legal {@inheritDoc} tags.
	InheritedPositions []Span
	// ValuePosition is the recorded legacy @value span, or nil.
	ValuePosition *Span

	Tags []Tag

	// Valid is false when any tag was malformed.
	Valid bool
}

// TypeReference is a single or qualified type name, possibly primitive,
// with array dimensions.
type TypeReference struct {
	Tokens    []string
	Positions []Span
	Primitive bool
	Dims      int
	Varargs   bool
	Span      Span
}

func (r *TypeReference) Pos() Span { return r.Span }
func (*TypeReference) expr()       {}

// Qualified reports whether the name has more than one segment.
func (r *TypeReference) Qualified() bool { return len(r.Tokens) > 1 }

// LastToken returns the simple name of the type.
func (r *TypeReference) LastToken() string {
	if len(r.Tokens) == 0 {
		return ""
	}
	return r.Tokens[len(r.Tokens)-1]
}

// ImplicitTypeReference stands for the enclosing type when a member
// reference has no receiver, as in {@link #foo()}.
type ImplicitTypeReference struct {
	Name string
	Span Span
}

func (r *ImplicitTypeReference) Pos() Span { return r.Span }
func (*ImplicitTypeReference) expr()       {}

// SingleNameReference names a method parameter in @param.
type SingleNameReference struct {
	Name    string
	Span    Span
	TagSpan Span
}

func (r *SingleNameReference) Pos() Span { return r.Span }
func (*SingleNameReference) expr()       {}

// SingleTypeReference names a type parameter in @param <T>.
type SingleTypeReference struct {
	Name    string
	Span    Span
	TagSpan Span
}

func (r *SingleTypeReference) Pos() Span { return r.Span }
func (*SingleTypeReference) expr()       {}

// FieldReference is Type#field.
type FieldReference struct {
	Name     string
	Receiver Expression
	Span     Span
	Tag      TagKind
}

func (r *FieldReference) Pos() Span { return r.Span }
func (*FieldReference) expr()       {}

// MessageSend is Type#method(Args).
type MessageSend struct {
	Selector  string
	Receiver  Expression
	Arguments []*ArgumentExpression
	Span      Span
	Tag       TagKind
}

func (r *MessageSend) Pos() Span { return r.Span }
func (*MessageSend) expr()       {}

// AllocationExpression is a constructor reference, Type#Type(Args).
type AllocationExpression struct {
	Type          Expression
	Qualification []string
	Arguments     []*ArgumentExpression
	MemberStart   int
	Span          Span
	Tag           TagKind
}

func (r *AllocationExpression) Pos() Span { return r.Span }
func (*AllocationExpression) expr()       {}

// ArgumentExpression is one entry of a method reference's parameter list.
type ArgumentExpression struct {
	Name string
	Type *TypeReference
	Span Span
}

func (r *ArgumentExpression) Pos() Span { return r.Span }
func (*ArgumentExpression) expr()       {}

// ModuleReference is module.name/ optionally followed by a type.
type ModuleReference struct {
	Module     []string
	ModuleSpan Span
	Type       *TypeReference
	Span       Span
}

func (r *ModuleReference) Pos() Span { return r.Span }
func (*ModuleReference) expr()       {}

// FakeReference is a @see target that is not a program element: a
// quoted string or an <a href> anchor.
type FakeReference struct {
	Text string
	Span Span
}

func (r *FakeReference) Pos() Span { return r.Span }
func (*FakeReference) expr()       {}

// ReturnStatement records the @return tag. Empty stays true until
// description text follows the tag.
type ReturnStatement struct {
	Span  Span
	Empty bool
}
