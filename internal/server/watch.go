package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
)

// watcher turns filesystem events under a set of roots into debounced
// rebuild requests.
type watcher struct {
	fs      *fsnotify.Watcher
	rb      *rebuilder
	exclude []string
}

// newWatcher watches every directory below roots. Paths under exclude (the
// output and stage directories) never trigger a rebuild.
func newWatcher(roots, exclude []string, rb *rebuilder) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &watcher{fs: fw, rb: rb}
	for _, ex := range exclude {
		if abs, err := filepath.Abs(ex); err == nil {
			w.exclude = append(w.exclude, abs)
		}
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if err := w.addRecursive(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.excluded(path)) {
			return fs.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *watcher) excluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, ex := range w.exclude {
		if abs == ex || strings.HasPrefix(abs, ex+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// run forwards events until ctx is done or the watcher closes.
func (w *watcher) run(ctx context.Context) {
	defer func() { _ = w.fs.Close() }()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	if ignoredName(ev.Name) || w.excluded(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addRecursive(ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.rb.trigger("change: " + filepath.Base(ev.Name))
}

// ignoredName reports hidden, editor swap and OS metadata files.
func ignoredName(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case base == "Thumbs.db", base == "4913":
		return true
	}
	return false
}
