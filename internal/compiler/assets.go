package compiler

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

// copyAssets copies every non-skeleton file of templateDir into the stage,
// keeping relative paths. Hidden entries are skipped; a file that would
// overwrite a page or artifact is skipped with a warning.
func copyAssets(templateDir string, st *stager) (int, error) {
	if templateDir == "" {
		return 0, nil
	}
	count := 0
	err := filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != templateDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return &IOError{Op: "read asset", Path: path, Err: err}
		}
		if err := st.write(rel, data); err != nil {
			if errors.Is(err, templates.ErrFileExists) {
				slog.Warn("Template asset shadows generated file; skipping", logfields.Path(rel))
				return nil
			}
			return err
		}
		count++
		return nil
	})
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return count, err
		}
		return count, &IOError{Op: "copy assets", Path: templateDir, Err: err}
	}
	return count, nil
}
