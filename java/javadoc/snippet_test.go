package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snippetTag(t *testing.T, doc *Document) Tag {
	t.Helper()
	for _, tag := range doc.Tags {
		if tag.Kind == TagSnippet {
			return tag
		}
	}
	t.Fatalf("no snippet tag in %+v", doc.Tags)
	return Tag{}
}

func TestSnippetDuplicateRegion(t *testing.T) {
	doc, problems := parseDoc(t, `/**
 * {@snippet :
 * int a; // @start region=r
 * int b; // @start region=r
 * // @end
 * // @end
 * }
 */`)

	require.Equal(t, 1, problems.Len(), "%v", problems.Items())
	p := problems.Items()[0]
	assert.Equal(t, DuplicateRegion, p.Kind)
	assert.Equal(t, []string{"r"}, p.Args)
	assert.Equal(t, "duplicate region r", p.Message())
	assert.False(t, snippetTag(t, doc).Valid)
}

func TestSnippetNestedRegionsClosed(t *testing.T) {
	doc, problems := parseDoc(t, `/**
 * {@snippet lang=java :
 * class Example { // @start region=a
 *   int b; // @start region=b
 *   // @end region=b
 * } // @end region=a
 * }
 */`)

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	assert.True(t, snippetTag(t, doc).Valid)
	assert.True(t, doc.Valid)
}

func TestSnippetRegionNotClosed(t *testing.T) {
	doc, problems := parseDoc(t, `/**
 * {@snippet :
 * int a; // @highlight region=h substring="a"
 * }
 */`)

	assert.Equal(t, 1, problems.Count(RegionNotClosed), "%v", problems.Items())
	assert.False(t, snippetTag(t, doc).Valid)
}

func TestSnippetProblemSpansStayOnOneLine(t *testing.T) {
	cases := []struct {
		text string
		kind ProblemKind
	}{
		{"/**\n * {@snippet :\n * a // @start region=r\n * }\n */", RegionNotClosed},
		{"/**\n * {@snippet : int x;\n * }\n */", SnippetContentNewLine},
		{"/**\n * {@snippet lang=java\n * }\n */", SnippetMissingColon},
	}
	for _, tc := range cases {
		_, problems := parseDoc(t, tc.text)
		require.Equal(t, 1, problems.Count(tc.kind), "%q: %v", tc.text, problems.Items())
		for _, p := range problems.Items() {
			if p.Kind != tc.kind {
				continue
			}
			lines := ComputeLines([]rune(tc.text))
			assert.LessOrEqual(t, p.Span.Start, p.Span.End, "%q", tc.text)
			assert.Equal(t, lines.LineNumber(p.Span.Start), lines.LineNumber(p.Span.End), "%q", tc.text)
			assert.Less(t, p.Span.End, len(tc.text)-2, "%q", tc.text)
		}
	}
}

func TestSnippetMissingColon(t *testing.T) {
	_, problems := parseDoc(t, "/** {@snippet lang=java} */")

	assert.Equal(t, 1, problems.Count(SnippetMissingColon), "%v", problems.Items())
}

func TestSnippetExternalIsQuietlyInvalid(t *testing.T) {
	doc, problems := parseDoc(t, `/** {@snippet file="Example.java" region="main"} */`)

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	assert.False(t, snippetTag(t, doc).Valid)
}

func TestSnippetContentMustStartOnNewLine(t *testing.T) {
	_, problems := parseDoc(t, "/** {@snippet : int x; } */")

	require.Equal(t, 1, problems.Len(), "%v", problems.Items())
	assert.Equal(t, SnippetContentNewLine, problems.Items()[0].Kind)
}

func TestSnippetEmptyBody(t *testing.T) {
	_, problems := parseDoc(t, "/** {@snippet :} */")

	require.Equal(t, 1, problems.Len(), "%v", problems.Items())
	p := problems.Items()[0]
	assert.Equal(t, MissingTagDescription, p.Kind)
	assert.Equal(t, []string{"snippet"}, p.Args)
}

func TestSnippetBracesInBody(t *testing.T) {
	doc, problems := parseDoc(t, `/**
 * {@snippet :
 * if (x) {
 *   System.out.println("}");
 * }
 * }
 * After.
 */`)

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	assert.True(t, snippetTag(t, doc).Valid)
}

func TestSnippetNeedsJava18(t *testing.T) {
	doc, problems := parseDoc(t, "/**\n * {@snippet :\n * x\n * }\n */", WithLevel(Level(17)))

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	assert.False(t, snippetTag(t, doc).Valid)
}

func TestSnippetMarkupAttributes(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		kind   ProblemKind
	}{
		{"regex and substring", `// @highlight regex="a" substring="b"`, SnippetAttributeConflict},
		{"replace without replacement", `// @replace substring="a"`, InvalidSnippet},
		{"start without region", `// @start`, InvalidSnippet},
		{"link without target", `// @link substring="a"`, InvalidSnippet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, problems := parseDoc(t, "/**\n * {@snippet :\n * a = b; "+tt.markup+"\n * }\n */")
			require.Equal(t, 1, problems.Len(), "%v", problems.Items())
			assert.Equal(t, tt.kind, problems.Items()[0].Kind)
			assert.False(t, snippetTag(t, doc).Valid)
		})
	}
}

func TestSnippetLinkTarget(t *testing.T) {
	doc, problems := parseDoc(t, "/**\n * {@snippet :\n * list.add(x); // @link substring=\"add\" target=List#add\n * }\n */")

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	assert.True(t, snippetTag(t, doc).Valid)
	assert.Empty(t, doc.SeeReferences, "snippet links are checked, not collected")

	doc, problems = parseDoc(t, "/**\n * {@snippet :\n * list.add(x); // @link substring=\"add\" target=#\n * }\n */")
	assert.Equal(t, 1, problems.Count(InvalidReference), "%v", problems.Items())
	assert.False(t, snippetTag(t, doc).Valid)
}

func TestRegionSet(t *testing.T) {
	var r regionSet
	assert.True(t, r.open("a", Span{Start: 1, End: 2}))
	assert.True(t, r.open("b", Span{Start: 3, End: 4}))
	assert.False(t, r.open("a", Span{Start: 5, End: 6}))
	assert.True(t, r.open("", Span{Start: 7, End: 8}))
	assert.Equal(t, 3, r.len())

	assert.True(t, r.close(""), "anonymous end closes the innermost region")
	assert.True(t, r.close("a"))
	assert.False(t, r.close("a"))
	assert.Equal(t, []string{"b"}, r.closeAll())
	assert.Zero(t, r.len())
}
