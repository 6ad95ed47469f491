package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagesmith/internal/compiler"
	"git.home.luguber.info/inful/pagesmith/internal/config"
	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
	"git.home.luguber.info/inful/pagesmith/internal/server"
	"git.home.luguber.info/inful/pagesmith/internal/workspace"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	SiteFlags `embed:""`

	Addr         string        `short:"a" help:"Listen address (overrides server.addr)"`
	Watch        *bool         `help:"Rebuild when content or template files change"`
	Metrics      *bool         `help:"Expose Prometheus metrics at /metrics"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Rebuild periodically, e.g. 10m (overrides server.rebuild_every)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.Watch != nil {
		cfg.Server.Watch = *s.Watch
	}
	if s.Metrics != nil {
		cfg.Server.Metrics = *s.Metrics
	}
	if s.RebuildEvery > 0 {
		cfg.Server.RebuildEvery = s.RebuildEvery.String()
	}
	if err := s.apply(cfg); err != nil {
		return err
	}
	return RunServe(g, cfg)
}

// RunServe compiles once, then serves the output until the context ends.
// A failed initial compile is reported but does not stop the server.
func RunServe(g *Global, cfg *config.Config) error {
	var (
		reg *prometheus.Registry
		rec metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.Server.Metrics {
		reg = prometheus.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	ws := templateWorkspace(cfg)
	build := func(ctx context.Context) error {
		templateDir, err := prepareTemplate(ctx, cfg, ws, rec)
		if err != nil {
			return err
		}
		c := compiler.New(compiler.OptionsFromConfig(cfg, templateDir), compiler.WithRecorder(rec))
		_, err = compileOnce(&Global{Ctx: ctx, Messages: g.Messages, Out: g.Out}, c)
		return err
	}

	if err := build(g.Ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	opts := server.Options{
		Addr:      cfg.Server.Addr,
		Root:      cfg.Output.Dir,
		Registry:  reg,
		Recorder:  rec,
		Build:     build,
		OnRebuild: func(string, error) { g.Say("server_rebuilt") },
	}
	if cfg.Server.Watch {
		opts.Watch = []string{cfg.Content.Dir}
		if cfg.Template.Repository == "" && cfg.Template.Dir != "" {
			opts.Watch = append(opts.Watch, cfg.Template.Dir)
		}
		opts.Exclude = []string{cfg.Output.Dir, cfg.Output.Dir + "_stage", cfg.Output.Dir + ".prev"}
	}
	opts.RebuildEvery = cfg.Server.RebuildInterval()

	return server.New(opts).Run(g.Ctx, func(addr string) {
		g.Say("server_started", cfg.Output.Dir, addr)
	})
}

// templateWorkspace returns a persistent workspace keyed by the template
// repository so rebuilds fetch into the same checkout.
func templateWorkspace(cfg *config.Config) *workspace.Manager {
	key := uuid.NewSHA1(uuid.NameSpaceURL, []byte(cfg.Template.Repository)).String()
	return workspace.NewPersistentManager("", "pagesmith-template-"+key)
}
