package config

import "strings"

// DefaultExtensions are the content file extensions scanned when none are
// configured.
var DefaultExtensions = []string{".md", ".markdown", ".toml", ".json", ".txt"}

func applyDefaults(cfg *Config) {
	if cfg.Site.Language == "" {
		cfg.Site.Language = "en"
	}
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range cfg.Content.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Content.Extensions[i] = ext
	}
	if cfg.Template.Repository != "" && cfg.Template.Ref == "" {
		cfg.Template.Ref = "main"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "public"
	}
	if cfg.Build.Workers < 0 {
		cfg.Build.Workers = 0
	}
	if cfg.Artifacts.DefaultChangeFreq == "" {
		cfg.Artifacts.DefaultChangeFreq = "weekly"
	}
	cfg.Artifacts.DefaultChangeFreq = strings.ToLower(cfg.Artifacts.DefaultChangeFreq)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8000"
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
