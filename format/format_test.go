package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jdoc/check"
	"github.com/dhamidi/jdoc/config"
)

const svc = `package p;

public class Svc {
    /**
     * Looks up a value.
     * @param <K> key type
     * @param key the key
     * @return the value
     * @throws IllegalStateException when closed
     * @see java.util.Map#get(Object)
     * @deprecated use {@link #find(Object)}
     */
    Object get(Object key) { return null; }

    /**
     * @param
     */
    void broken(int x) {}
}
`

func result(t *testing.T) *check.Result {
	t.Helper()
	c, err := check.New(config.Default())
	require.NoError(t, err)
	return c.CheckSource("Svc.java", []rune(svc))
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(result(t)))

	var got fileView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Svc.java", got.Path)
	require.Len(t, got.Comments, 2)

	c := got.Comments[0]
	assert.Equal(t, 4, c.Line)
	assert.True(t, c.Deprecated)
	assert.True(t, c.Valid)
	assert.Equal(t, []string{"key"}, c.Params)
	assert.Equal(t, []string{"K"}, c.TypeParameters)
	assert.Equal(t, []string{"IllegalStateException"}, c.Exceptions)
	require.NotNil(t, c.Return)
	assert.False(t, c.Return.Empty)
	require.Len(t, c.References, 2)
	assert.Equal(t, referenceView{Tag: "see", Kind: "method", Text: "java.util.Map#get(Object)", Start: c.References[0].Start, End: c.References[0].End}, c.References[0])
	assert.Equal(t, "link", c.References[1].Tag)
	assert.Equal(t, "#find(Object)", c.References[1].Text)

	assert.False(t, got.Comments[1].Valid)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, diagnosticView{
		Kind:      "missing_param_name",
		Severity:  "error",
		Message:   "missing parameter name",
		Line:      16,
		Column:    8,
		EndLine:   got.Diagnostics[0].EndLine,
		EndColumn: got.Diagnostics[0].EndColumn,
	}, got.Diagnostics[0])
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(result(t)))
	require.True(t, strings.HasPrefix(buf.String(), "---\n"))

	var got fileView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Svc.java", got.Path)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, []string{"key"}, got.Comments[0].Params)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, "missing_param_name", got.Diagnostics[0].Kind)
}

func TestTextEncoder(t *testing.T) {
	color.NoColor = true
	res := result(t)

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf, true).Encode(res))
	assert.Equal(t, `Svc.java:4:5: comment
    @deprecated
    @param <K>
    @param key
    @return
    @throws IllegalStateException
    @see java.util.Map#get(Object)
    @link #find(Object)
Svc.java:15:5: comment (invalid)
Svc.java:16:8: error: missing parameter name [missing_param_name]
`, buf.String())

	buf.Reset()
	require.NoError(t, NewTextEncoder(&buf, false).Encode(res))
	assert.Equal(t, "Svc.java:16:8: error: missing parameter name [missing_param_name]\n", buf.String())
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{}, false)
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{}, false)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
