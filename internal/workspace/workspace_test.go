package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager_Ephemeral(t *testing.T) {
	base := t.TempDir()
	mgr := NewManager(base, "pagesmith-template")
	require.Empty(t, mgr.Path())

	require.NoError(t, mgr.Create())
	dir := mgr.Path()
	require.True(t, strings.HasPrefix(filepath.Base(dir), "pagesmith-template-"))
	require.DirExists(t, dir)

	sub, err := mgr.Subdir("repo")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "repo"), sub)
	require.DirExists(t, sub)

	require.NoError(t, mgr.Cleanup())
	require.NoDirExists(t, dir)
	require.Empty(t, mgr.Path())
	require.NoError(t, mgr.Cleanup())
}

func TestManager_EphemeralUnique(t *testing.T) {
	base := t.TempDir()
	a, b := NewManager(base, ""), NewManager(base, "")
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	require.NotEqual(t, a.Path(), b.Path())
	require.True(t, strings.HasPrefix(filepath.Base(a.Path()), "pagesmith-"))
}

func TestManager_Persistent(t *testing.T) {
	base := t.TempDir()
	mgr := NewPersistentManager(base, "templates")
	require.True(t, mgr.Persistent())
	require.Equal(t, filepath.Join(base, "templates"), mgr.Path())

	require.NoError(t, mgr.Create())
	marker := filepath.Join(mgr.Path(), "marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o600))

	require.NoError(t, mgr.Cleanup())
	require.FileExists(t, marker)

	again := NewPersistentManager(base, "templates")
	require.NoError(t, again.Create())
	require.FileExists(t, marker)
}

func TestManager_SubdirBeforeCreate(t *testing.T) {
	_, err := NewManager(t.TempDir(), "x").Subdir("a")
	require.ErrorIs(t, err, ErrNotCreated)
}
