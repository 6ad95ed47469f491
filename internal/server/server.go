package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// MetricsPath is where compile metrics are exposed.
const MetricsPath = "/metrics"

// Options configure a Server.
type Options struct {
	Addr string
	// Root is the compiled output directory served to clients.
	Root string
	// Registry, when set, is exposed at MetricsPath.
	Registry *prometheus.Registry
	Recorder metrics.Recorder
	// Watch lists directories whose changes trigger a rebuild.
	Watch []string
	// Exclude lists directories below Watch that never trigger a rebuild.
	Exclude []string
	// RebuildEvery schedules periodic rebuilds when positive.
	RebuildEvery time.Duration
	// Build recompiles the site. Nil disables watch and periodic rebuilds.
	Build BuildFunc
	// OnRebuild is called after every watch or scheduled rebuild.
	OnRebuild func(reason string, err error)
}

// Server serves a compiled site and keeps it fresh.
type Server struct {
	opts Options
	http *http.Server
}

// New returns a Server for opts.
func New(opts Options) *Server {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Server{opts: opts}
}

// Handler returns the HTTP handler: the site plus optional metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.opts.Registry != nil {
		mux.Handle(MetricsPath, metrics.HTTPHandler(s.opts.Registry))
	}
	mux.Handle("/", NewSiteHandler(s.opts.Root))
	return chain(slog.Default(), s.opts.Recorder, mux)
}

// Run listens on opts.Addr and blocks until ctx is done. ready, when not
// nil, receives the bound address once the listener is up.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServer, "listen failed").
			WithContext("addr", s.opts.Addr).
			Build()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.opts.Build != nil {
		stop, err := s.startRebuilds(ctx)
		if err != nil {
			_ = ln.Close()
			return err
		}
		defer stop()
	}

	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- s.http.Serve(ln) }()

	addr := ln.Addr().String()
	slog.Info("Dev server listening", slog.String("addr", addr), logfields.Path(s.opts.Root))
	if ready != nil {
		ready(addr)
	}

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryServer, "serve failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	slog.Info("Shutting down dev server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// startRebuilds starts the rebuild worker plus the watcher and scheduler
// the options ask for. The returned func stops them.
func (s *Server) startRebuilds(ctx context.Context) (func(), error) {
	rb := newRebuilder(s.opts.Build, DebounceDelay)
	rb.onDone = s.opts.OnRebuild
	go rb.run(ctx)
	stops := []func(){rb.stop}
	stopAll := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if len(s.opts.Watch) > 0 {
		w, err := newWatcher(s.opts.Watch, s.opts.Exclude, rb)
		if err != nil {
			stopAll()
			return nil, ferrors.WrapError(err, ferrors.CategoryServer, "start file watcher").Build()
		}
		go w.run(ctx)
		slog.Info("Watching for changes", slog.Any("dirs", s.opts.Watch))
	}

	if s.opts.RebuildEvery > 0 {
		sched, err := newScheduler(s.opts.RebuildEvery, rb)
		if err != nil {
			stopAll()
			return nil, ferrors.WrapError(err, ferrors.CategoryServer, "start rebuild scheduler").Build()
		}
		sched.Start()
		stops = append(stops, func() {
			if err := sched.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		})
		slog.Info("Periodic rebuild scheduled", slog.Duration("every", s.opts.RebuildEvery))
	}
	return stopAll, nil
}
