package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReferenceLinks(t *testing.T) {
	direct, problems := parseDoc(t, "/// See [java.util.List] for details.\n")
	assert.Zero(t, problems.Len(), "%v", problems.Items())
	require.True(t, direct.Markdown)
	require.Len(t, direct.SeeReferences, 1)

	labeled, problems := parseDoc(t, "/// See [the list type][java.util.List] for details.\n")
	assert.Zero(t, problems.Len(), "%v", problems.Items())
	require.Len(t, labeled.SeeReferences, 1)

	a, ok := direct.SeeReferences[0].(*TypeReference)
	require.True(t, ok)
	b, ok := labeled.SeeReferences[0].(*TypeReference)
	require.True(t, ok)
	assert.Equal(t, a.Tokens, b.Tokens)
	assert.Equal(t, "java.util.List", FormatReference(b))
}

func TestMarkdownMemberLink(t *testing.T) {
	doc, problems := parseDoc(t, "/// Calls [Map#get(Object)] once.\n")

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	require.Len(t, doc.SeeReferences, 1)
	send, ok := doc.SeeReferences[0].(*MessageSend)
	require.True(t, ok)
	assert.Equal(t, "get", send.Selector)
	assert.Equal(t, TagLink, send.Tag)

	require.Len(t, doc.Tags, 1)
	assert.Equal(t, TagLink, doc.Tags[0].Kind)
	assert.True(t, doc.Tags[0].Inline)
}

func TestMarkdownTextIsNotALink(t *testing.T) {
	for _, text := range []string{
		"/// Use `[Foo]` literally.\n",
		"/// ```\n/// int[] a = [Foo];\n/// ```\n",
		"/// A [regular link](https://example.com).\n",
		"/// Some [plain words] here.\n",
		"/// An [unclosed bracket\n/// spans] lines.\n",
	} {
		doc, problems := parseDoc(t, text)
		assert.Empty(t, doc.SeeReferences, "%q", text)
		assert.Zero(t, problems.Len(), "%q: %v", text, problems.Items())
	}
}

func TestMarkdownBlockTags(t *testing.T) {
	doc, problems := parseDoc(t, "/// Adds an item.\n///\n/// @param item the item\n/// @return whether it was added\n")

	assert.Zero(t, problems.Len(), "%v", problems.Items())
	require.Len(t, doc.ParamReferences, 1)
	assert.Equal(t, "item", doc.ParamReferences[0].Name)
	require.NotNil(t, doc.Return)
	assert.False(t, doc.Return.Empty)
}

func TestMarkdownLinkWithBadReference(t *testing.T) {
	doc, problems := parseDoc(t, "/// See [Foo#].\n")

	assert.Equal(t, 1, problems.Count(InvalidReference), "%v", problems.Items())
	assert.Empty(t, doc.SeeReferences)
	require.Len(t, doc.Tags, 1)
	assert.False(t, doc.Tags[0].Valid)
}

func TestLooksLikeReference(t *testing.T) {
	assert.True(t, looksLikeReference("String"))
	assert.True(t, looksLikeReference("#field"))
	assert.True(t, looksLikeReference("Map#put(Object, Object)"))
	assert.False(t, looksLikeReference(""))
	assert.False(t, looksLikeReference("two words"))
	assert.False(t, looksLikeReference("1st"))
	assert.False(t, looksLikeReference("m(unbalanced"))
}

func TestMarkdownLinkAcrossLinesNeedsCompletion(t *testing.T) {
	const text = "/// See [Map#put(Object,\n/// Object)] here.\n"

	doc, _ := parseDoc(t, text)
	assert.Empty(t, doc.SeeReferences)

	doc, _ = parseDoc(t, text, WithCompletion(true))
	require.Len(t, doc.SeeReferences, 1)
	send, ok := doc.SeeReferences[0].(*MessageSend)
	require.True(t, ok, "%T", doc.SeeReferences[0])
	assert.Equal(t, "put", send.Selector)
	assert.Equal(t, "Map#put(Object, Object)", FormatReference(send))
}

func TestMarkdownNestedBracketLinksInnerReference(t *testing.T) {
	doc, _ := parseDoc(t, "/// See [the [java.util.List] type].\n")

	require.Len(t, doc.SeeReferences, 1)
	assert.Equal(t, "java.util.List", FormatReference(doc.SeeReferences[0]))
}
