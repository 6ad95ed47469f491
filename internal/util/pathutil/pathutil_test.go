package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		dir  string
		path string
		want bool
	}{
		{"same", root, root, true},
		{"same after cleaning", root, root + "/./", true},
		{"child", root, filepath.Join(root, "content"), true},
		{"grandchild", root, filepath.Join(root, "a", "b"), true},
		{"parent", filepath.Join(root, "content"), root, false},
		{"sibling", filepath.Join(root, "public"), filepath.Join(root, "content"), false},
		{"sibling with shared prefix", filepath.Join(root, "site"), filepath.Join(root, "site-content"), false},
		{"dotted name below", root, filepath.Join(root, "..content"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Contains(tt.dir, tt.path))
		})
	}
}

func TestContains_ResolvesSymlinks(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "real")
	require.NoError(t, os.MkdirAll(filepath.Join(real, "content"), 0o755))
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(real, link))

	require.True(t, Contains(link, filepath.Join(real, "content")))
}

func TestContains_RelativePaths(t *testing.T) {
	t.Chdir(t.TempDir())
	require.True(t, Contains("site", "site/content"))
	require.True(t, Contains(".", "content"))
	require.False(t, Contains("public", "content"))
}
