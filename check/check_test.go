package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jdoc/config"
	"github.com/dhamidi/jdoc/java/javadoc"
)

const broken = `package p;

public class Broken {
    /**
     * Reads a value.
     * @param
     * @return the value
     */
    int read(int key) { return key; }

    /**
     * @deprecated use {@link #read(int)}
     */
    void old() {}
}
`

const clean = `package p;

/** A clean type. */
public class Clean {
    /**
     * Creates one.
     * @see #Clean()
     */
    public Clean() {}
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, text := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(text), 0o644))
	}
	return root
}

func newChecker(t *testing.T, cfg config.Config) *Checker {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestCheckSource(t *testing.T) {
	c := newChecker(t, config.Default())
	res := c.CheckSource("Broken.java", []rune(broken))

	assert.Len(t, res.Documents, 2)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, javadoc.MissingParamName.ID(), d.Kind)
	assert.Equal(t, 6, d.Start.Line)
	assert.Equal(t, 8, d.Start.Column)
	assert.True(t, res.HasErrors())
}

func TestCheckSourceClean(t *testing.T) {
	res := newChecker(t, config.Default()).CheckSource("Clean.java", []rune(clean))

	assert.Len(t, res.Documents, 2)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.HasErrors())
}

func TestSeverityOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Severity = map[string]string{javadoc.MissingParamName.ID(): "warning"}
	res := newChecker(t, cfg).CheckSource("Broken.java", []rune(broken))

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, javadoc.SevWarning, res.Diagnostics[0].Severity)
	assert.False(t, res.HasErrors())
}

func TestUnterminatedComment(t *testing.T) {
	res := newChecker(t, config.Default()).CheckSource("A.java", []rune("class A {\n/** open"))

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unterminated_comment", res.Diagnostics[0].Kind)
	assert.Equal(t, 2, res.Diagnostics[0].Start.Line)
	assert.True(t, res.HasErrors())
}

func TestRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/p/Broken.java":          broken,
		"src/p/Clean.java":           clean,
		"src/generated/Skipped.java": broken,
		"README.md":                  "# not java",
	})
	cfg := config.Default()
	cfg.Jobs = 2
	cfg.Exclude = []string{"**/generated/**"}
	c := newChecker(t, cfg)

	results, err := c.Run(context.Background(), []string{root})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(root, "src", "p", "Broken.java"), results[0].Path)
	assert.True(t, results[0].HasErrors())
	assert.False(t, results[1].HasErrors())
}

func TestRunCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"A.java": clean})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newChecker(t, config.Default()).Run(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMissingRoot(t *testing.T) {
	_, err := newChecker(t, config.Default()).Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestCheckFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Foo.java":  "class Foo {\n  /** {@link #Foo()} */\n  Foo() {}\n}\n",
		"Open.java": "class Open {\n/** open",
	})
	c := newChecker(t, config.Default())

	res, err := c.CheckFile(filepath.Join(root, "Foo.java"))
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	refs := res.Documents[0].Document.SeeReferences
	require.Len(t, refs, 1)
	assert.IsType(t, &javadoc.AllocationExpression{}, refs[0], "the enclosing type makes #Foo() a constructor")

	res, err = c.CheckFile(filepath.Join(root, "Open.java"))
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unterminated_comment", res.Diagnostics[0].Kind)

	_, err = c.CheckFile(filepath.Join(root, "Missing.java"))
	assert.Error(t, err)
}

func TestCollectRejectsOtherFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"README.md": "# docs", "A.java": clean})
	c := newChecker(t, config.Default())

	_, err := c.Collect([]string{filepath.Join(root, "README.md")})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	files, err := c.Collect([]string{filepath.Join(root, "A.java"), root})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "A.java"), filepath.Join(root, "A.java")}, files)
}

func TestDeprecations(t *testing.T) {
	root := writeTree(t, map[string]string{"Broken.java": broken})

	deps, err := newChecker(t, config.Default()).Deprecations(filepath.Join(root, "Broken.java"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.False(t, deps[0].Deprecated)
	assert.True(t, deps[1].Deprecated)
	assert.Equal(t, 11, deps[1].Start.Line)
}

func TestPosition(t *testing.T) {
	lines := javadoc.ComputeLines([]rune("ab\ncd"))
	pos := Position(lines, 4)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Level = "cobol"
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrUnknownLevel)
}
