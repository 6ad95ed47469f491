package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteNew(t *testing.T) {
	root := filepath.Join(t.TempDir(), "site")

	full, err := WriteNew(root, "posts/2024/a.html", []byte("content"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "posts", "2024", "a.html"), full)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	_, err = WriteNew(root, "posts/b.html", []byte("second"))
	require.NoError(t, err)
}

func TestWriteNew_RejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"../outside.html", "/abs.html", "a/../../b.html", ""} {
		_, err := WriteNew(root, rel, []byte("x"))
		require.Error(t, err, rel)
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(root), "outside.html"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteNew_NeverOverwrites(t *testing.T) {
	root := t.TempDir()

	_, err := WriteNew(root, "a.html", []byte("first"))
	require.NoError(t, err)
	_, err = WriteNew(root, "a.html", []byte("second"))
	require.ErrorIs(t, err, ErrFileExists)

	data, err := os.ReadFile(filepath.Join(root, "a.html"))
	require.NoError(t, err)
	require.Equal(t, "first", string(data))
}
