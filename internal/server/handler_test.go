package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return root
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSiteHandler(t *testing.T) {
	root := siteTree(t, map[string]string{
		"index.html":       "home",
		"about.html":       "about",
		"guide/index.html": "guide",
		"404.html":         "custom missing",
		"style.css":        "body{}",
	})
	h := NewSiteHandler(root)

	tests := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, "home"},
		{"/about.html", http.StatusOK, "about"},
		{"/guide/", http.StatusOK, "guide"},
		{"/guide", http.StatusOK, "guide"},
		{"/style.css", http.StatusOK, "body{}"},
		{"/missing.html", http.StatusNotFound, "custom missing"},
		{"/nope/", http.StatusNotFound, "custom missing"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestSiteHandler_PlainNotFound(t *testing.T) {
	h := NewSiteHandler(siteTree(t, map[string]string{"index.html": "home"}))
	rec := get(t, h, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "404 page not found")
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestSiteHandler_DirectoryWithoutIndex(t *testing.T) {
	h := NewSiteHandler(siteTree(t, map[string]string{"assets/logo.svg": "<svg/>"}))
	require.Equal(t, http.StatusNotFound, get(t, h, "/assets/").Code)
}

func TestSiteHandler_RejectsTraversal(t *testing.T) {
	h := NewSiteHandler(siteTree(t, map[string]string{"index.html": "home"}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../etc/passwd"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteHandler_MethodNotAllowed(t *testing.T) {
	h := NewSiteHandler(siteTree(t, map[string]string{"index.html": "home"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestCleanRequestPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/", "", true},
		{"/a/b.html", "a/b.html", true},
		{"//a//b/", "a/b", true},
		{"/a/./b", "a/b", true},
		{"/a/../b", "", false},
		{"/..", "", false},
		{"/a\\..\\b", "", false},
		{"/a\x00", "", false},
	}
	for _, tt := range tests {
		got, ok := cleanRequestPath(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
