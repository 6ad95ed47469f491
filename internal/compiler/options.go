package compiler

import (
	"path/filepath"
	"runtime"

	"git.home.luguber.info/inful/pagesmith/internal/artifacts"
	"git.home.luguber.info/inful/pagesmith/internal/config"
	"git.home.luguber.info/inful/pagesmith/internal/markdown"
	"git.home.luguber.info/inful/pagesmith/internal/util/pathutil"
	"git.home.luguber.info/inful/pagesmith/internal/version"
)

// Options configure a Compiler.
type Options struct {
	ContentDir string
	OutputDir  string
	// TemplateDir holds skeletons and static assets. Empty uses the embedded
	// skeleton and copies no assets.
	TemplateDir string
	Scan        ScanOptions
	// Workers bounds per-file concurrency; 0 means one per CPU.
	Workers    int
	Strict     bool
	Minify     bool
	Stylesheet string
	Site       artifacts.SiteInfo
	Render     markdown.Options
	Artifacts  artifacts.Options
}

// OptionsFromConfig derives compiler options from cfg. templateDir
// overrides cfg.Template.Dir, which lets callers substitute a fetched
// checkout.
func OptionsFromConfig(cfg *config.Config, templateDir string) Options {
	if templateDir == "" {
		templateDir = cfg.Template.Dir
	}
	return Options{
		ContentDir:  cfg.Content.Dir,
		OutputDir:   filepath.Clean(cfg.Output.Dir),
		TemplateDir: templateDir,
		Scan:        ScanOptions{Recursive: cfg.Content.Recursive, Extensions: cfg.Content.Extensions},
		Workers:     cfg.Build.Workers,
		Strict:      cfg.Build.Strict,
		Minify:      cfg.Render.Minify,
		Stylesheet:  cfg.Template.Stylesheet,
		Site: artifacts.SiteInfo{
			Name:        cfg.Site.Name,
			Domain:      cfg.Site.Domain,
			BaseURL:     cfg.Site.BaseURL,
			Language:    cfg.Site.Language,
			Description: cfg.Site.Description,
			Copyright:   cfg.Site.Copyright,
			Author:      cfg.Site.Author,
			Generator:   version.Generator(),
		},
		Render: markdown.Options{
			HighlightStyle:       cfg.Render.HighlightStyle,
			HardWraps:            cfg.Render.HardWraps,
			TransliterateAnchors: cfg.Render.TransliterateAnchors,
		},
		Artifacts: artifacts.Options{
			DefaultChangeFreq: cfg.Artifacts.DefaultChangeFreq,
			CNAMERequired:     cfg.Artifacts.CNAMERequired,
		},
	}
}

// checkOutput rejects an output directory that would swallow the content or
// template directory when the stage is promoted over it.
func (o Options) checkOutput() error {
	for _, src := range []string{o.ContentDir, o.TemplateDir} {
		if src != "" && pathutil.Contains(o.OutputDir, src) {
			return &UnsafeOutputError{Output: o.OutputDir, Source: src}
		}
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
