package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkDeprecation(t *testing.T, text string) bool {
	t.Helper()
	src := []rune(text)
	p := NewParser()
	deprecated, err := p.CheckDeprecation(NewInput(src, 0, len(src)))
	require.NoError(t, err)
	assert.Equal(t, deprecated, p.IsDeprecated())
	return deprecated
}

func TestCheckDeprecation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"block tag", "/**\n * @deprecated use bar\n */", true},
		{"first line", "/** @deprecated */", true},
		{"before comment end", "/** @deprecated*/", true},
		{"after another tag", "/**\n * @since 1.0\n * @deprecated\n */", true},
		{"unicode escape", "/** @\\u0064eprecated */", true},
		{"tab terminated", "/**\n *\t@deprecated\tsoon\n */", true},
		{"longer name", "/** @deprecatedSince 9 */", false},
		{"inside text", "/**\n * Not @deprecated at all.\n */", false},
		{"inline", "/** {@deprecated} */", false},
		{"no tags", "/** Plain text. */", false},
		{"markdown", "/// Summary.\n/// @deprecated\n", true},
		{"markdown text", "/// Not @deprecated.\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkDeprecation(t, tt.text))
		})
	}
}

func TestDeprecationWithoutDocComments(t *testing.T) {
	problems := &ProblemList{}
	doc, err := ParseComment("/**\n * @param\n * @deprecated\n */", WithDocComments(false), WithReporter(problems))

	require.NoError(t, err)
	assert.True(t, doc.Deprecated)
	assert.Empty(t, doc.Tags, "no document is built")
	assert.Zero(t, problems.Len(), "the fast path reports nothing")
}

func TestCheckDeprecationRejectsBadSpan(t *testing.T) {
	_, err := NewParser().CheckDeprecation(Input{Source: []rune("/**"), Start: 0, End: 10})
	assert.ErrorIs(t, err, ErrMalformedInput)
}
