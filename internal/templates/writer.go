package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileExists is returned by WriteNew when the target is already present.
var ErrFileExists = errors.New("file already exists")

// WriteNew creates rel below dir with content and returns its full path.
// rel must stay inside dir and must not exist yet; parent directories are
// created as needed.
func WriteNew(dir, rel string, content []byte) (string, error) {
	if dir == "" || rel == "" {
		return "", fmt.Errorf("write %q in %q: empty path", rel, dir)
	}
	clean := filepath.Clean(rel)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q leaves %s", rel, dir)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	if err := mkdirAllIn(root, filepath.Dir(clean)); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f, err := root.OpenFile(clean, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrFileExists, filepath.Join(dir, clean))
	}
	if err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return filepath.Join(dir, clean), nil
}

// mkdirAllIn creates every component of rel inside root.
func mkdirAllIn(root *os.Root, rel string) error {
	if rel == "." {
		return nil
	}
	var cur string
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		cur = filepath.Join(cur, part)
		if err := root.Mkdir(cur, 0o750); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
