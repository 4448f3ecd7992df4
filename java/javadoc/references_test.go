package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declStub struct {
	main string
	open *TypeDeclaration
}

func (d declStub) MainTypeName() string       { return d.main }
func (d declStub) OpenType() *TypeDeclaration { return d.open }

func onlyReference(t *testing.T, text string, opts ...Option) Expression {
	t.Helper()
	doc, problems := parseDoc(t, text, opts...)
	require.Zero(t, problems.Len(), "%v", problems.Items())
	require.Len(t, doc.SeeReferences, 1)
	return doc.SeeReferences[0]
}

func TestReferenceForms(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/**\n * @see java.util.List\n */", "java.util.List"},
		{"/**\n * @see Foo#bar(String...)\n */", "Foo#bar(String...)"},
		{"/**\n * @see Foo#bar(int[] values, int count)\n */", "Foo#bar(int[] values, int count)"},
		{"/**\n * @see Foo#Foo(int)\n */", "Foo#Foo(int)"},
		{"/** {@link #count} */", "#count"},
		{"/** {@link a.Foo#a.Foo()} */", "a.Foo#a.Foo()"},
		{"/**\n * @see java.base/java.lang.String\n */", "java.base/java.lang.String"},
		{`/** {@value #MAX} */`, "#MAX"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReference(onlyReference(t, tt.text)))
		})
	}
}

func TestReferenceKinds(t *testing.T) {
	field, ok := onlyReference(t, "/** {@link #count} */").(*FieldReference)
	require.True(t, ok)
	assert.Equal(t, "count", field.Name)
	assert.IsType(t, &ImplicitTypeReference{}, field.Receiver)

	value, ok := onlyReference(t, "/** {@value #MAX} */").(*FieldReference)
	require.True(t, ok)
	assert.Equal(t, TagValue, value.Tag)
	assert.Equal(t, TagValue, ReferenceTag(value))

	module, ok := onlyReference(t, "/**\n * @see java.base/java.lang.String\n */").(*ModuleReference)
	require.True(t, ok)
	assert.Equal(t, []string{"java", "base"}, module.Module)
	require.NotNil(t, module.Type)
	assert.Equal(t, "String", module.Type.LastToken())

	varargs, ok := onlyReference(t, "/**\n * @see Foo#bar(String...)\n */").(*MessageSend)
	require.True(t, ok)
	require.Len(t, varargs.Arguments, 1)
	assert.True(t, varargs.Arguments[0].Type.Varargs)
	assert.Equal(t, 1, varargs.Arguments[0].Type.Dims)
}

func TestConstructorReferences(t *testing.T) {
	text := "/**\n * @see #Foo()\n */"

	assert.IsType(t, &MessageSend{}, onlyReference(t, text))
	assert.IsType(t, &AllocationExpression{}, onlyReference(t, text, WithDeclarations(declStub{main: "Foo"})))

	open := declStub{main: "Outer", open: &TypeDeclaration{Name: "Foo", Start: 40}}
	alloc, ok := onlyReference(t, text, WithDeclarations(open)).(*AllocationExpression)
	require.True(t, ok)
	implicit, ok := alloc.Type.(*ImplicitTypeReference)
	require.True(t, ok)
	assert.Equal(t, "Foo", implicit.Name)
}

func TestFakeReferences(t *testing.T) {
	str, ok := onlyReference(t, "/**\n * @see \"The Java Language Specification\"\n */").(*FakeReference)
	require.True(t, ok)
	assert.Equal(t, `"The Java Language Specification"`, str.Text)

	href, ok := onlyReference(t, "/**\n * @see <a href=\"https://example.com\">Example</a>\n */").(*FakeReference)
	require.True(t, ok)
	assert.Equal(t, `<a href="https://example.com">Example</a>`, href.Text)
}

func TestReferenceProblems(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  ProblemKind
		level Level
	}{
		{"missing", "/**\n * @see\n */", MissingReference, LatestLevel},
		{"url", "/**\n * @see http://x.com\n */", InvalidSeeURLReference, LatestLevel},
		{"missing hash", "/**\n * @see Foo(int)\n */", MissingHashCharacter, LatestLevel},
		{"mixed argument names", "/**\n * @see Foo#bar(int x, String)\n */", InvalidSeeArgs, LatestLevel},
		{"no separator", "/**\n * @see Foo#bar()x\n */", MalformedSeeReference, LatestLevel},
		{"member qualification", "/** {@link a.Foo#b.Foo()} */", InvalidMemberTypeQualification, LatestLevel},
		{"value needs a field", "/** {@value Foo} */", InvalidReference, LatestLevel},
		{"module before java 15", "/**\n * @see java.base/java.lang.String\n */", MalformedSeeReference, Level(14)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, problems := parseDoc(t, tt.text, WithLevel(tt.level))
			assert.Equal(t, 1, problems.Count(tt.kind), "%v", problems.Items())
			assert.Empty(t, doc.SeeReferences)
			assert.False(t, doc.Valid)
		})
	}
}

func TestMissingHashMessage(t *testing.T) {
	_, problems := parseDoc(t, "/**\n * @see Foo(int)\n */")

	require.Equal(t, 1, problems.Count(MissingHashCharacter))
	for _, p := range problems.Items() {
		if p.Kind == MissingHashCharacter {
			assert.Equal(t, "missing # in reference to Foo(int)", p.Message())
		}
	}
}

func TestArgumentNeedsTypeReference(t *testing.T) {
	p := NewParser()

	_, err := p.createArgumentReference("x", 0, false, &FieldReference{Name: "f"}, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.NotErrorIs(t, err, errInvalidInput)

	arg, err := p.createArgumentReference("", 1, true, &TypeReference{Tokens: []string{"int"}, Span: Span{Start: 3, End: 5}}, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "int...", FormatReference(arg))
	assert.Equal(t, Span{Start: 3, End: 8}, arg.Span)
}
