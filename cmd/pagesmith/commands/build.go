package commands

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pagesmith/internal/compiler"
	"git.home.luguber.info/inful/pagesmith/internal/config"
	"git.home.luguber.info/inful/pagesmith/internal/git"
	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
	"git.home.luguber.info/inful/pagesmith/internal/retry"
	"git.home.luguber.info/inful/pagesmith/internal/workspace"
)

// SiteFlags override configuration values shared by build and serve.
type SiteFlags struct {
	Content      string `short:"i" help:"Content directory (overrides content.dir)" type:"path"`
	Output       string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
	Template     string `short:"t" help:"Template directory (overrides template.dir)" type:"path"`
	TemplateRepo string `name:"template-repo" help:"Git URL of a template repository (overrides template.repository)"`
	Ref          string `help:"Branch, tag or commit of the template repository"`
	Recursive    *bool  `help:"Scan content subdirectories"`
	Strict       *bool  `help:"Fail on malformed metadata blocks instead of falling back"`
	Minify       *bool  `help:"Minify assembled HTML pages"`
	Workers      int    `short:"j" help:"Parallel file workers (0 = one per CPU)"`
}

// apply copies every set flag onto cfg and revalidates it.
func (f *SiteFlags) apply(cfg *config.Config) error {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&cfg.Content.Dir, f.Content)
	setString(&cfg.Output.Dir, f.Output)
	setString(&cfg.Template.Dir, f.Template)
	setString(&cfg.Template.Repository, f.TemplateRepo)
	setString(&cfg.Template.Ref, f.Ref)
	setBool(&cfg.Content.Recursive, f.Recursive)
	setBool(&cfg.Build.Strict, f.Strict)
	setBool(&cfg.Render.Minify, f.Minify)
	if f.Workers > 0 {
		cfg.Build.Workers = f.Workers
	}
	if cfg.Template.Repository != "" && cfg.Template.Ref == "" {
		cfg.Template.Ref = "main"
	}
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}
	return nil
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}
	_, err = RunBuild(g, cfg, metrics.NoopRecorder{})
	return err
}

// RunBuild fetches the template repository when one is configured, compiles
// the site once and prints a localized summary.
func RunBuild(g *Global, cfg *config.Config, rec metrics.Recorder) (*compiler.Report, error) {
	ws := workspace.NewManager("", "pagesmith-template")
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()

	templateDir, err := prepareTemplate(g.Ctx, cfg, ws, rec)
	if err != nil {
		return nil, err
	}

	c := compiler.New(compiler.OptionsFromConfig(cfg, templateDir), compiler.WithRecorder(rec))
	return compileOnce(g, c)
}

func compileOnce(g *Global, c *compiler.Compiler) (*compiler.Report, error) {
	opts := c.Options()
	g.Say("build_started", opts.ContentDir, opts.OutputDir)
	report, err := c.Compile(g.Ctx)
	if err != nil {
		g.Say("build_failed")
		return report, err
	}
	g.Say("build_completed", len(report.Pages), len(report.Artifacts), report.Duration().Truncate(time.Millisecond))
	if report.Unchanged > 0 {
		g.Say("build_unchanged", report.Unchanged)
	}
	slog.Debug("Build report", slog.String("summary", report.Summary()))
	return report, nil
}

// prepareTemplate returns the template directory to compile with. With a
// template repository configured it is checked out into ws first.
func prepareTemplate(ctx context.Context, cfg *config.Config, ws *workspace.Manager, rec metrics.Recorder) (string, error) {
	if cfg.Template.Repository == "" {
		return cfg.Template.Dir, nil
	}
	if err := ws.Create(); err != nil {
		return "", filesystemError(err, ws.Path())
	}
	dir, err := ws.Subdir("checkout")
	if err != nil {
		return "", filesystemError(err, ws.Path())
	}
	policy := retry.NewPolicy(retry.BackoffMode(cfg.Template.Backoff), 0, 0, cfg.Template.FetchRetries())
	res, err := git.NewFetcher(rec, git.WithRetry(policy)).Fetch(ctx, dir, git.Source{
		URL:    cfg.Template.Repository,
		Ref:    cfg.Template.Ref,
		Subdir: cfg.Template.Subdir,
	})
	if err != nil {
		return "", err
	}
	return res.Dir, nil
}
