package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyState      = "state"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyArtifact   = "artifact"
	KeyPages      = "pages"
	KeyFormat     = "format"
	KeyField      = "field"
	KeyTemplate   = "template"
	KeyRepo       = "repository"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyURL        = "url"
	KeyWorker     = "worker"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func State(name string) slog.Attr     { return slog.String(KeyState, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Field(name string) slog.Attr     { return slog.String(KeyField, name) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Worker(n int) slog.Attr          { return slog.Int(KeyWorker, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
