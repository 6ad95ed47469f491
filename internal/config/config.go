package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "pagesmith.yaml"

// ErrNotFound is returned by Load when the configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the pagesmith.yaml document.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Template  TemplateConfig  `yaml:"template"`
	Output    OutputConfig    `yaml:"output"`
	Render    RenderConfig    `yaml:"render"`
	Build     BuildConfig     `yaml:"build"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig holds site-wide values. Page metadata overrides them.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Domain      string `yaml:"domain,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Language    string `yaml:"language"`
	Description string `yaml:"description,omitempty"`
	Copyright   string `yaml:"copyright,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ContentConfig selects the source files.
type ContentConfig struct {
	Dir        string   `yaml:"dir"`
	Recursive  bool     `yaml:"recursive,omitempty"`
	Extensions []string `yaml:"extensions"`
}

// TemplateConfig locates the page skeleton. Repository takes precedence
// over Dir; an empty Dir with no repository uses the embedded skeleton.
type TemplateConfig struct {
	Dir        string `yaml:"dir,omitempty"`
	Repository string `yaml:"repository,omitempty"`
	Ref        string `yaml:"ref,omitempty"`
	Subdir     string `yaml:"subdir,omitempty"`
	Stylesheet string `yaml:"stylesheet,omitempty"`
	// Retries bounds fetch retries after network failures.
	Retries *int `yaml:"retries,omitempty"`
	// Backoff is fixed, linear or exponential.
	Backoff string `yaml:"backoff,omitempty"`
}

// DefaultTemplateRetries applies when template.retries is unset.
const DefaultTemplateRetries = 2

// FetchRetries returns the configured retry count.
func (t TemplateConfig) FetchRetries() int {
	if t.Retries == nil {
		return DefaultTemplateRetries
	}
	return *t.Retries
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// RenderConfig tunes body rendering and page post-processing.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlight_style,omitempty"`
	HardWraps      bool   `yaml:"hard_wraps,omitempty"`
	Minify         bool   `yaml:"minify,omitempty"`
	// TransliterateAnchors folds heading ids to ASCII ("Über uns" to
	// "uber-uns"). Off keeps the letters as written.
	TransliterateAnchors bool `yaml:"transliterate_anchors,omitempty"`
}

// BuildConfig tunes the compiler.
type BuildConfig struct {
	// Workers bounds per-file concurrency; 0 means one per CPU.
	Workers int  `yaml:"workers"`
	Strict  bool `yaml:"strict,omitempty"`
}

// ArtifactsConfig tunes the site-wide generators.
type ArtifactsConfig struct {
	DefaultChangeFreq string `yaml:"default_changefreq"`
	CNAMERequired     bool   `yaml:"cname_required,omitempty"`
}

// ServerConfig configures `pagesmith serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	Metrics      bool   `yaml:"metrics,omitempty"`
	Watch        bool   `yaml:"watch,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands and validates the configuration file at path.
// ${VAR} references are expanded after .env files are loaded; unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default
// otherwise. Parse and validation errors are still returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return cfg, err
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	example := Default()
	example.Site = SiteConfig{
		Name:        "My Site",
		Domain:      "example.com",
		BaseURL:     "https://example.com",
		Language:    "en",
		Description: "A site built with pagesmith",
		Copyright:   "© My Site",
		Author:      "${USER}",
	}
	example.Template.Dir = "template"
	example.Template.Stylesheet = "style.css"
	example.Render.Minify = true

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(example); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
