package server

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NotFoundPage is served with status 404 when it exists at the site root.
const NotFoundPage = "404.html"

// SiteHandler serves files of a compiled site. "/" and directories map to
// their index.html; anything missing gets the site's 404 page or a plain
// text fallback. Requests whose path escapes the root are rejected.
type SiteHandler struct {
	root string
}

// NewSiteHandler serves the tree under root.
func NewSiteHandler(root string) *SiteHandler {
	return &SiteHandler{root: root}
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	rel, ok := cleanRequestPath(r.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	file, ok := h.resolve(rel)
	if !ok {
		h.notFound(w, r)
		return
	}
	http.ServeFile(w, r, file)
}

// resolve maps a cleaned request path onto a regular file under root.
func (h *SiteHandler) resolve(rel string) (string, bool) {
	target := filepath.Join(h.root, filepath.FromSlash(rel))
	info, err := os.Stat(target)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		target = filepath.Join(target, "index.html")
		if info, err = os.Stat(target); err != nil {
			return "", false
		}
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return target, true
}

func (h *SiteHandler) notFound(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(h.root, NotFoundPage))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

// cleanRequestPath returns the slash path relative to the site root, or
// false when the raw path contains a parent segment or a NUL byte.
func cleanRequestPath(p string) (string, bool) {
	if strings.ContainsRune(p, 0) || strings.Contains(p, `\`) {
		return "", false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := path.Clean("/" + p)
	return strings.TrimPrefix(clean, "/"), true
}
