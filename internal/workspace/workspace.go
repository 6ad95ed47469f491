package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
)

// ErrNotCreated is returned by Subdir before Create.
var ErrNotCreated = errors.New("workspace not created")

// Manager owns one workspace directory.
type Manager struct {
	baseDir    string
	prefix     string
	dir        string
	persistent bool
}

// NewManager returns a manager for an ephemeral directory under baseDir
// (the system temp dir when empty) named prefix-*.
func NewManager(baseDir, prefix string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if prefix == "" {
		prefix = "pagesmith"
	}
	return &Manager{baseDir: baseDir, prefix: prefix}
}

// NewPersistentManager returns a manager for the fixed directory
// baseDir/name, which Cleanup leaves in place.
func NewPersistentManager(baseDir, name string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if name == "" {
		name = "working"
	}
	return &Manager{baseDir: baseDir, dir: filepath.Join(baseDir, name), persistent: true}
}

// Create makes the workspace directory. Persistent workspaces are reused
// when they already exist.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return fmt.Errorf("failed to create persistent workspace directory: %w", err)
		}
		slog.Debug("Using persistent workspace", logfields.Path(m.dir))
		return nil
	}

	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base directory: %w", err)
	}
	dir, err := os.MkdirTemp(m.baseDir, m.prefix+"-*")
	if err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory, or "" before Create.
func (m *Manager) Path() string { return m.dir }

// Persistent reports whether Cleanup keeps the directory.
func (m *Manager) Persistent() bool { return m.persistent }

// Cleanup removes an ephemeral workspace. It is a no-op for persistent
// workspaces and before Create.
func (m *Manager) Cleanup() error {
	if m.dir == "" || m.persistent {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}

// Subdir creates and returns a directory inside the workspace.
func (m *Manager) Subdir(name string) (string, error) {
	if m.dir == "" {
		return "", ErrNotCreated
	}
	sub := filepath.Join(m.dir, name)
	if err := os.MkdirAll(sub, 0o750); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}
	return sub, nil
}
