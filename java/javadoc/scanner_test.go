package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(s *tokenScanner) []tokenKind {
	var kinds []tokenKind
	for {
		k := s.next()
		if k == tokEOF {
			return kinds
		}
		kinds = append(kinds, k)
	}
}

func TestTokenScanner(t *testing.T) {
	src := []rune("Map#get(int[] a, String...)")
	s := tokenScanner{src: src}
	s.resetTo(0, len(src))

	assert.Equal(t, []tokenKind{
		tokIdentifier, tokHash, tokIdentifier, tokLParen,
		tokKeyword, tokLBracket, tokRBracket, tokIdentifier, tokComma,
		tokIdentifier, tokEllipsis, tokRParen,
	}, scanAll(&s))
}

func TestTokenScannerModes(t *testing.T) {
	src := []rune(`x = "open`)
	s := tokenScanner{src: src, whitespace: true}
	s.resetTo(0, len(src))
	assert.Equal(t, []tokenKind{tokIdentifier, tokWhitespace, tokEqual, tokWhitespace, tokError}, scanAll(&s))

	src = []rune("a; // @end\nb")
	s = tokenScanner{src: src, comments: true}
	s.resetTo(0, len(src))
	require.Equal(t, tokIdentifier, s.next())
	require.Equal(t, tokOther, s.next())
	require.Equal(t, tokCommentLine, s.next())
	assert.Equal(t, "// @end", s.text)
	assert.Equal(t, tokIdentifier, s.next())

	// the window end is exclusive
	s.resetTo(0, 1)
	require.Equal(t, tokIdentifier, s.next())
	assert.Equal(t, tokEOF, s.next())
}

func TestDecodeAt(t *testing.T) {
	tests := []struct {
		text string
		want rune
		next int
	}{
		{"A", 'A', 1},
		{`\u0041`, 'A', 6},
		{`\uu0041`, 'A', 7},
		{`\u00G1`, '\\', 1},
		{`\x`, '\\', 1},
		{`\u00`, '\\', 1},
	}
	for _, tt := range tests {
		c, next := decodeAt([]rune(tt.text), 0)
		assert.Equal(t, tt.want, c, tt.text)
		assert.Equal(t, tt.next, next, tt.text)
	}

	c, next := decodeAt([]rune("a"), 3)
	assert.Zero(t, c)
	assert.Equal(t, 4, next)
}

func TestLineTable(t *testing.T) {
	lines := ComputeLines([]rune("a\nb\r\nc"))
	require.Equal(t, LineTable{1, 4}, lines)

	assert.Equal(t, 1, lines.LineNumber(0))
	assert.Equal(t, 1, lines.LineNumber(1))
	assert.Equal(t, 2, lines.LineNumber(2))
	assert.Equal(t, 3, lines.LineNumber(5))

	assert.Equal(t, 0, lines.LineStart(1))
	assert.Equal(t, 2, lines.LineStart(2))
	assert.Equal(t, 5, lines.LineStart(3))
	assert.Equal(t, -1, lines.LineStart(4))

	assert.Equal(t, 1, lines.LineEnd(1, 6))
	assert.Equal(t, 4, lines.LineEnd(2, 6))
	assert.Equal(t, 6, lines.LineEnd(3, 6))
	assert.Equal(t, -1, lines.LineEnd(4, 6))
}

func TestFindFirstTag(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"/** text {@code x} */", 10},
		{"/** a@b */", 0},
		{"/**\n * @since 1\n */", 7},
		{"/** @return x */", 4},
		{"/// text\n/// @param a b\n", 13},
	}
	for _, tt := range tests {
		src := []rune(tt.text)
		assert.Equal(t, tt.want, FindFirstTag(src, 0, len(src)), tt.text)
	}
}

func TestProblemList(t *testing.T) {
	var l ProblemList
	l.Report(Problem{Kind: MissingTagDescription, Severity: SevWarning, Span: Span{Start: 9, End: 12}, Args: []string{"since"}})
	l.Report(Problem{Kind: InvalidTag, Severity: SevError, Span: Span{Start: 3, End: 5}})
	l.Report(Problem{Kind: DuplicateReturn, Severity: SevError, Span: Span{Start: 3, End: 4}})

	l.Sort()
	assert.Equal(t, []ProblemKind{DuplicateReturn, InvalidTag, MissingTagDescription}, l.Kinds())
	assert.True(t, l.HasErrors())
	assert.Equal(t, "9-12: warning: description expected after @since", l.Items()[2].String())

	l.Reset()
	assert.Zero(t, l.Len())
	l.Report(Problem{Kind: MissingTagDescription, Severity: SevWarning})
	assert.False(t, l.HasErrors())
}

func TestProblemKindIDs(t *testing.T) {
	for kind, info := range problemTable {
		got, ok := LookupProblem(info.id)
		require.True(t, ok, info.id)
		assert.Equal(t, kind, got)
	}
	_, ok := LookupProblem("no_such_problem")
	assert.False(t, ok)
	assert.Equal(t, "problem_999", ProblemKind(999).ID())
	assert.Equal(t, SevError, ProblemKind(999).DefaultSeverity())
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []Severity{SevInfo, SevWarning, SevError} {
		got, err := ParseSeverity(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		text string
		want Level
		str  string
	}{
		{"1.4", Java1_4, "1.4"},
		{"1.8", Java8, "8"},
		{"5", Java5, "5"},
		{" 17 ", Level(17), "17"},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.str, got.String())
	}

	for _, bad := range []string{"", "java", "0", "-3"} {
		_, err := ParseLevel(bad)
		assert.Error(t, err, bad)
	}
}
