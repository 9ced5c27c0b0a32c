package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/java2py/index"
	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/resolve"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

var fixedClock = func() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func newRenderer(t *testing.T, root string, opts ...Option) (*Renderer, *index.Recorder) {
	t.Helper()
	rec := &index.Recorder{}
	ix, err := index.Build(root, index.WithReporter(rec))
	require.NoError(t, err)
	r, err := New(ix, resolve.New(ix), append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	return r, rec
}

const javaLangString = "package java.lang;\npublic final class String {}\n"

func TestRenderSimple(t *testing.T) {
	root := writeTree(t, map[string]string{
		"java/lang/String.java": javaLangString,
		"simple/IBase.java": `package simple;
public interface IBase {
    int VERSION = 2;
    void run(String name, int[] counts);
}
`,
	})
	r, _ := newRenderer(t, root)

	got, err := r.Render("simple")
	require.NoError(t, err)

	want := `# Generated by java2py from package simple on 2026-01-02 03:04:05 UTC.
from typing import List


class IBase(object):
    VERSION = 2  # type: int

    def run(self, name, counts):
        # type: (str, List[int]) -> None
        pass
`
	assert.Equal(t, want, got)
}

func TestRenderDocumentation(t *testing.T) {
	root := writeTree(t, map[string]string{
		"java/lang/String.java": javaLangString,
		"burp/IBase.java":       "package burp;\npublic interface IBase {}\n",
		"burp/IDerived.java": `package burp;

import java.util.List;

/** Derived type. */
public interface IDerived extends IBase {
    /**
     * Looks a name up.
     *
     * @param key the key
     * @return the value
     * @exception IOException when the lookup fails
     */
    byte[] lookup(String key, String... from) throws IOException;
}
`,
	})
	r, _ := newRenderer(t, root)

	got, err := r.Render("burp")
	require.NoError(t, err)

	assert.Contains(t, got, "import java.util\n")
	assert.Contains(t, got, "class IBase(object):\n    pass\n")
	assert.Contains(t, got, `class IDerived(IBase):
    """
    Derived type.
    """

    def lookup(self, key, from_):
        # type: (str, List[str]) -> bytearray
        """
        Looks a name up.

        :param key: the key
        :return: the value
        :raises IOException: when the lookup fails
        """
        pass
`)
}

func TestRenderOrdersBaseTypesFirst(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/ARequest.java": "package app;\npublic class ARequest extends ZBase {}\n",
		"app/MHandler.java": "package app;\npublic interface MHandler extends Runnable {}\n",
		"app/ZBase.java":    "package app;\npublic class ZBase {}\n",
		"app/BPlain.java":   "package app;\npublic class BPlain {}\n",
	})
	tmpl := filepath.Join(t.TempDir(), "names.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte(`{{ .Package.Name }}:{{ range .Package.Files }} {{ .Class.Name }}{{ end }}`), 0o644))

	r, _ := newRenderer(t, root, WithTemplateFile(tmpl))
	got, err := r.Render("app")
	require.NoError(t, err)
	assert.Equal(t, "app: BPlain ZBase ARequest MHandler", got)
}

func TestRenderSkipsUnusableFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/Good.java":   "package app;\npublic class Good {}\n",
		"app/Broken.java": "package app;\npublic class Broken { void run( }\n",
		"app/Pair.java":   "package app;\nclass Left {}\nclass Right {}\n",
	})
	r, rec := newRenderer(t, root)

	view, err := r.Load("app")
	require.NoError(t, err)
	require.Len(t, view.Files, 1)
	assert.Equal(t, "Good", view.Files[0].Class.Name)
	assert.Equal(t, []string{"Broken", "Good", "Pair"}, view.ClassNames)

	diags := rec.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, filepath.Join(root, "app", "Broken.java"), diags[0].Path)
	assert.Equal(t, filepath.Join(root, "app", "Pair.java"), diags[1].Path)
}

func TestLoadImports(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/A.java": "package app;\nimport java.util.List;\nimport java.util.*;\npublic class A {}\n",
		"app/B.java": "package app;\nimport java.util.List;\nimport static java.util.Collections.emptyList;\npublic class B {}\n",
	})
	r, _ := newRenderer(t, root)

	view, err := r.Load("app")
	require.NoError(t, err)

	var imports []string
	for _, imp := range view.Imports {
		imports = append(imports, imp.String())
	}
	assert.Equal(t, []string{
		"import java.util.List",
		"import java.util.*",
		"import static java.util.Collections.emptyList",
	}, imports)
	assert.Equal(t, []string{"java.util"}, view.Modules())
}

func TestRenderErrors(t *testing.T) {
	t.Run("unknown package", func(t *testing.T) {
		r, _ := newRenderer(t, writeTree(t, map[string]string{"app/A.java": "package app; class A {}"}))
		_, err := r.Render("nope")
		assert.ErrorIs(t, err, index.ErrPackageNotFound)
	})

	t.Run("multi-dimensional array", func(t *testing.T) {
		r, _ := newRenderer(t, writeTree(t, map[string]string{
			"app/Grid.java": "package app;\npublic interface Grid { int[][] cells(); }\n",
		}))
		_, err := r.Render("app")
		assert.ErrorIs(t, err, resolve.ErrMultiDimensionalArray)
	})

	t.Run("strict resolution", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"app/A.java": "package app;\npublic interface A { Missing get(); }\n",
		})
		ix, err := index.Build(root)
		require.NoError(t, err)
		r, err := New(ix, resolve.New(ix, resolve.WithStrict(true)))
		require.NoError(t, err)
		_, err = r.Render("app")
		assert.ErrorIs(t, err, resolve.ErrUnresolved)
	})

	t.Run("strict resolution within the package", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"burp/AChild.java": "package burp;\npublic interface AChild extends ZBase {}\n",
			"burp/ZBase.java":  "package burp;\npublic interface ZBase {}\n",
		})
		ix, err := index.Build(root)
		require.NoError(t, err)
		r, err := New(ix, resolve.New(ix, resolve.WithStrict(true)))
		require.NoError(t, err)
		out, err := r.Render("burp")
		require.NoError(t, err)
		assert.Contains(t, out, "class AChild(ZBase):")
	})

	t.Run("bad template", func(t *testing.T) {
		tmpl := filepath.Join(t.TempDir(), "bad.tmpl")
		require.NoError(t, os.WriteFile(tmpl, []byte("{{ .Package.Name "), 0o644))
		ix, err := index.Build(t.TempDir())
		require.NoError(t, err)
		_, err = New(ix, resolve.New(ix), WithTemplateFile(tmpl))
		assert.Error(t, err)
	})
}

func TestDocstring(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"text only", "/** Does things. */", "\"\"\"\nDoes things.\n\"\"\""},
		{"hints only", "/**\n * @return nothing\n */", "\"\"\"\n:return: nothing\n\"\"\""},
		{"reserved parameter", "/**\n * @param from the start\n * @param to the end\n */", "\"\"\"\n:param from_: the start\n:param to: the end\n\"\"\""},
		{"quotes", `/** Says """hi""". */`, "\"\"\"\nSays \\\"\\\"\\\"hi\\\"\\\"\\\".\n\"\"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := javadoc.DecodeMethod(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, docstring(doc))
		})
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    a\n\n    b", indent(4, "a\n  \nb"))
	assert.Equal(t, "", indent(2, ""))
}
