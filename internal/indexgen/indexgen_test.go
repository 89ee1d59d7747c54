package indexgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xlsx", "报表 1.xlsx", ".hidden", "index.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))

	now := time.Date(2024, 3, 5, 9, 7, 1, 0, time.Local)
	res, err := Generate(Options{Dir: dir, Title: "documents", Now: func() time.Time { return now }})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "index.html"), res.Path)
	assert.Equal(t, []string{"a.xlsx", "docs", "报表 1.xlsx"}, res.Files)

	page, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<title>文件目录 - documents</title>")
	assert.Contains(t, html, "当前目录下共有 3 个文件")
	assert.Contains(t, html, `<a href="./a.xlsx" download>a.xlsx</a>`)
	assert.Contains(t, html, "download>报表 1.xlsx</a>")
	assert.NotContains(t, html, `href="./报表 1.xlsx"`)
	assert.NotContains(t, html, ".hidden")
	assert.NotContains(t, html, `href="./index.html"`)
	assert.Contains(t, html, "页面生成于 2024/3/5 09:07:01")
}

func TestGenerate_Overwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("stale"), 0o644))

	res, err := Generate(Options{Dir: dir})
	require.NoError(t, err)
	assert.Empty(t, res.Files)

	page, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "stale")
	assert.Contains(t, string(page), "共有 0 个文件")
	assert.Contains(t, string(page), "文件目录 - "+filepath.Base(dir))
}

func TestGenerate_MissingDir(t *testing.T) {
	_, err := Generate(Options{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestListEntries_CustomOutput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"list.html", "index.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	files, err := ListEntries(dir, "list.html")
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, files)
}
