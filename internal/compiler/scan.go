package compiler

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/page"
)

// ContentFile is one scanned source file.
type ContentFile struct {
	// Path is the file's location on disk.
	Path string
	// Name is the slash-separated path relative to the content directory.
	Name string
	Raw  []byte
}

// ScanOptions selects which files Scan returns.
type ScanOptions struct {
	Recursive  bool
	Extensions []string
}

// Scan reads the content files of dir sorted by name. Directories and
// non-regular entries are skipped, as are hidden directories when
// recursing. Unreadable files are skipped with a warning. Two files whose
// output names differ only by case produce a CollisionError.
func Scan(dir string, opts ScanOptions) ([]ContentFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &IOError{Op: "scan", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Op: "scan", Path: dir, Err: fs.ErrInvalid}
	}

	var files []ContentFile
	visit := func(path string, d fs.DirEntry) {
		if !d.Type().IsRegular() || !matchesExtension(d.Name(), opts.Extensions) {
			return
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable content file", logfields.Path(path), logfields.Error(err))
			return
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		files = append(files, ContentFile{Path: path, Name: filepath.ToSlash(rel), Raw: raw})
	}

	if opts.Recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				slog.Warn("Skipping unreadable content path", logfields.Path(path), logfields.Error(err))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			visit(path, d)
			return nil
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(dir)
		for _, e := range entries {
			visit(filepath.Join(dir, e.Name()), e)
		}
	}
	if err != nil {
		return nil, &IOError{Op: "scan", Path: dir, Err: err}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	if err := detectCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

func matchesExtension(name string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(name)))
}

func detectCollisions(files []ContentFile) error {
	seen := make(map[string]int, len(files))
	for i, f := range files {
		key := strings.ToLower(page.OutputName(f.Name))
		if j, ok := seen[key]; ok {
			return &CollisionError{Output: page.OutputName(f.Name), Paths: []string{files[j].Path, f.Path}}
		}
		seen[key] = i
	}
	return nil
}
