package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed skeletons/*
var skeletonFS embed.FS

// DefaultName is the name reported for the embedded skeleton.
const DefaultName = "embedded:default.html"

// candidate skeleton files tried, in order, when a page sets no layout.
var defaultCandidates = []string{"index.html", "page.html"}

// ErrLayoutNotFound is returned when a page names a layout the template
// directory does not contain.
var ErrLayoutNotFound = errors.New("layout not found")

// Loader resolves page skeletons from a template directory, falling back to
// the embedded default. Parsed skeletons are cached; Loader is safe for
// concurrent use.
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[string]*Template
}

// NewLoader returns a Loader reading from dir. An empty dir uses only the
// embedded skeleton.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: make(map[string]*Template)}
}

// Dir returns the template directory.
func (l *Loader) Dir() string { return l.dir }

// Load returns the skeleton for layout. With a layout, <layout>.html must
// exist in the template directory. Without one, index.html then page.html
// are tried before the embedded default.
func (l *Loader) Load(layout string) (*Template, error) {
	layout = strings.TrimSpace(layout)

	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.cache[layout]; ok {
		return t, nil
	}

	t, err := l.resolve(layout)
	if err != nil {
		return nil, err
	}
	l.cache[layout] = t
	return t, nil
}

func (l *Loader) resolve(layout string) (*Template, error) {
	if layout != "" {
		if strings.ContainsAny(layout, `/\`) || strings.HasPrefix(layout, ".") {
			return nil, fmt.Errorf("invalid layout name %q", layout)
		}
		if l.dir == "" {
			return nil, fmt.Errorf("%w: %s (no template directory)", ErrLayoutNotFound, layout)
		}
		name := layout + ".html"
		t, ok, err := l.readSkeleton(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, filepath.Join(l.dir, name))
		}
		return t, nil
	}

	if l.dir != "" {
		for _, name := range defaultCandidates {
			t, ok, err := l.readSkeleton(name)
			if err != nil {
				return nil, err
			}
			if ok {
				return t, nil
			}
		}
	}
	return DefaultSkeleton(), nil
}

func (l *Loader) readSkeleton(name string) (*Template, bool, error) {
	path := filepath.Join(l.dir, name)
	// #nosec G304 -- name is a fixed candidate or a validated layout name.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read template %s: %w", path, err)
	}
	return Parse(path, string(data)), true, nil
}

// DefaultSkeleton returns the embedded page skeleton.
func DefaultSkeleton() *Template {
	data, err := skeletonFS.ReadFile("skeletons/default.html")
	if err != nil {
		panic(fmt.Sprintf("embedded skeleton missing: %v", err))
	}
	return Parse(DefaultName, string(data))
}

// Scaffold writes the embedded skeleton and stylesheet into dir as
// index.html and style.css. Existing files are never overwritten.
func Scaffold(dir string) ([]string, error) {
	files := map[string]string{
		"index.html": "skeletons/default.html",
		"style.css":  "skeletons/style.css",
	}
	var written []string
	for _, out := range []string{"index.html", "style.css"} {
		data, err := skeletonFS.ReadFile(files[out])
		if err != nil {
			return written, err
		}
		full, err := WriteNew(dir, out, data)
		if err != nil {
			return written, err
		}
		written = append(written, full)
	}
	return written, nil
}
