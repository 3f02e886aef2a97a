package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestRenderCommand(t *testing.T) {
	site := t.TempDir()
	out := t.TempDir()

	writeFile(t, filepath.Join(site, "content", "home.json"), `{"title":"Rendered title"}`)
	writeFile(t, filepath.Join(site, "index.html"), `<html><body data-cms-page="home"><h1 data-cms-key="title">x</h1></body></html>`)
	aboutPage := `<html><body data-cms-page="about"><h1 data-cms-key="title">Unchanged</h1></body></html>`
	writeFile(t, filepath.Join(site, "about", "index.html"), aboutPage)

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{
		"render",
		"--site", site,
		"--out", out,
		filepath.Join(site, "index.html"),
		filepath.Join(site, "about", "index.html"),
	})
	require.NoError(t, root.Execute())

	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(home), `<h1 data-cms-key="title">Rendered title</h1>`)

	about, err := os.ReadFile(filepath.Join(out, "about", "index.html"))
	require.NoError(t, err)
	require.Equal(t, aboutPage, string(about))
}

func TestRenderCommandMissingPage(t *testing.T) {
	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--site", t.TempDir(), filepath.Join(t.TempDir(), "missing.html")})
	require.ErrorContains(t, root.Execute(), "read page")
}

func TestMarkdownCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	root.SetOut(&stdout)
	root.SetIn(strings.NewReader("# Hello\n*world*"))
	root.SetArgs([]string{"markdown"})
	require.NoError(t, root.Execute())
	require.Equal(t, "<h1>Hello</h1><br/><em>world</em>\n", stdout.String())
}

func TestOutputPath(t *testing.T) {
	sep := string(filepath.Separator)
	require.Equal(t, "page.html", outputPath("site", "", "page.html"))
	require.Equal(t, filepath.Join("out", "blog", "a.html"), outputPath("site", "out", filepath.Join("site", "blog", "a.html")))
	require.Equal(t, filepath.Join("out", "x.html"), outputPath("site", "out", ".."+sep+"elsewhere"+sep+"x.html"))
}
