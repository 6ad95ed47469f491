package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
}

func names(files []ContentFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestScan_FlatFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.md":          "b",
		"a.TXT":         "a",
		"c.json":        "{}",
		"image.png":     "x",
		"docs/inner.md": "skipped without recursion",
	})

	files, err := Scan(dir, ScanOptions{Extensions: []string{".md", ".txt", ".json"}})
	require.NoError(t, err)
	require.Equal(t, []string{"a.TXT", "b.md", "c.json"}, names(files))
	require.Equal(t, filepath.Join(dir, "b.md"), files[1].Path)
	require.Equal(t, "b", string(files[1].Raw))
}

func TestScan_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.md":          "i",
		"guide/setup.md":    "s",
		"guide/deep/faq.md": "f",
		".drafts/wip.md":    "hidden",
	})

	files, err := Scan(dir, ScanOptions{Recursive: true, Extensions: []string{".md"}})
	require.NoError(t, err)
	require.Equal(t, []string{"guide/deep/faq.md", "guide/setup.md", "index.md"}, names(files))
}

func TestScan_Collision(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Page.md": "a", "page.txt": "b"})

	_, err := Scan(dir, ScanOptions{Extensions: []string{".md", ".txt"}})
	var ce *CollisionError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "page.html", ce.Output)
	require.Len(t, ce.Paths, 2)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), ScanOptions{})
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "scan", ioErr.Op)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file.md": "x"})
	_, err := Scan(filepath.Join(dir, "file.md"), ScanOptions{})
	require.Error(t, err)
}

func TestScan_Empty(t *testing.T) {
	files, err := Scan(t.TempDir(), ScanOptions{Extensions: []string{".md"}})
	require.NoError(t, err)
	require.Empty(t, files)
}
