package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/pagesmith/internal/artifacts"
	"git.home.luguber.info/inful/pagesmith/internal/frontmatter"
	"git.home.luguber.info/inful/pagesmith/internal/logfields"
	"git.home.luguber.info/inful/pagesmith/internal/markdown"
	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
	"git.home.luguber.info/inful/pagesmith/internal/navigation"
	"git.home.luguber.info/inful/pagesmith/internal/normalize"
	"git.home.luguber.info/inful/pagesmith/internal/page"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

// Compiler compiles one content directory. Compile calls are serialized, so
// a Compiler may be shared between a watcher and a scheduler.
type Compiler struct {
	opts      Options
	renderer  markdown.Renderer
	recorder  metrics.Recorder
	extractor *frontmatter.Extractor

	mu sync.Mutex

	stateMu sync.RWMutex
	state   State
}

// Option customizes a Compiler.
type Option func(*Compiler)

// WithRecorder reports stage and build metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) { c.recorder = r }
}

// WithRenderer replaces the goldmark body renderer.
func WithRenderer(r markdown.Renderer) Option {
	return func(c *Compiler) { c.renderer = r }
}

// New returns a Compiler for opts.
func New(opts Options, options ...Option) *Compiler {
	c := &Compiler{
		opts:      opts,
		recorder:  metrics.NoopRecorder{},
		extractor: &frontmatter.Extractor{Strict: opts.Strict},
		state:     StateIdle,
	}
	for _, o := range options {
		o(c)
	}
	if c.renderer == nil {
		c.renderer = markdown.NewGoldmarkRenderer(opts.Render)
	}
	return c
}

// Options returns the compiler's configuration.
func (c *Compiler) Options() Options { return c.opts }

// State returns the current lifecycle state.
func (c *Compiler) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Compiler) transition(to State) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if !c.state.CanTransition(to) {
		return &TransitionError{From: c.state, To: to}
	}
	slog.Debug("Compiler state transition", slog.String("from", string(c.state)), logfields.State(string(to)))
	c.state = to
	return nil
}

func (c *Compiler) reset() {
	c.stateMu.Lock()
	c.state = StateIdle
	c.stateMu.Unlock()
}

// run is the working set of one compile.
type run struct {
	files     []ContentFile
	previous  map[string]string
	pages     []*page.Artifact
	outlines  map[string]markdown.Outline
	aggregate *artifacts.SiteAggregate
	generated []artifacts.Artifact
	report    *Report
	stage     *stager
}

type stageDef struct {
	state State
	fn    func(context.Context, *run) error
}

// Compile runs every stage and returns the report. On failure the output
// directory is left untouched and the error is a ClassifiedError.
func (c *Compiler) Compile(ctx context.Context) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()

	r := &run{report: newReport(), stage: &stager{outputDir: c.opts.OutputDir}}
	slog.Info("Compile started", logfields.Path(c.opts.ContentDir), slog.String("output", c.opts.OutputDir))

	err := c.runStages(ctx, r, []stageDef{
		{StateScanning, c.scan},
		{StateProcessingFiles, c.process},
		{StateAggregating, c.aggregate},
		{StateGeneratingArtifacts, c.generate},
		{StateWriting, c.write},
	})
	r.report.finish(err)
	c.recorder.ObserveBuildDuration(r.report.Duration())

	if err != nil {
		r.stage.abort()
		outcome := metrics.BuildOutcomeFailed
		if r.report.Outcome == OutcomeCanceled {
			outcome = metrics.BuildOutcomeCanceled
		}
		c.recorder.IncBuildOutcome(outcome)
		return r.report, Classify(err)
	}

	c.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	c.recorder.SetPages(len(r.pages))
	if perr := r.report.Persist(c.opts.OutputDir); perr != nil {
		slog.Warn("Failed to write build report", logfields.Path(c.opts.OutputDir), logfields.Error(perr))
	}
	slog.Info("Compile complete",
		logfields.Pages(len(r.pages)),
		slog.Int("unchanged", r.report.Unchanged),
		logfields.DurationMS(float64(r.report.Duration().Milliseconds())))
	return r.report, nil
}

func (c *Compiler) runStages(ctx context.Context, r *run, stages []stageDef) error {
	fail := func() { _ = c.transition(StateFailed) }

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			r.report.recordStage(st.state, 0, StageResultCanceled)
			c.recorder.IncStageResult(string(st.state), metrics.ResultCanceled)
			fail()
			return fmt.Errorf("%w before %s: %w", errCanceled, st.state, err)
		}
		if err := c.transition(st.state); err != nil {
			fail()
			return err
		}

		t0 := time.Now()
		err := st.fn(ctx, r)
		dur := time.Since(t0)
		c.recorder.ObserveStageDuration(string(st.state), dur)

		if err != nil {
			result, label := StageResultFatal, metrics.ResultFatal
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				result, label = StageResultCanceled, metrics.ResultCanceled
				err = fmt.Errorf("%w during %s: %w", errCanceled, st.state, err)
			}
			r.report.recordStage(st.state, dur, result)
			c.recorder.IncStageResult(string(st.state), label)
			fail()
			slog.Debug("Compile stage failed", logfields.Stage(string(st.state)), logfields.Error(err))
			return err
		}

		r.report.recordStage(st.state, dur, StageResultSuccess)
		c.recorder.IncStageResult(string(st.state), metrics.ResultSuccess)
		slog.Debug("Compile stage complete", logfields.Stage(string(st.state)), logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return c.transition(StateDone)
}

func (c *Compiler) scan(_ context.Context, r *run) error {
	if err := c.opts.checkOutput(); err != nil {
		return err
	}
	files, err := Scan(c.opts.ContentDir, c.opts.Scan)
	if err != nil {
		return err
	}
	r.files = files
	r.report.Files = len(files)

	if prev, err := LoadReport(c.opts.OutputDir); err == nil {
		r.previous = prev.fingerprints()
	}
	return nil
}

func (c *Compiler) process(ctx context.Context, r *run) error {
	names := make([]string, len(r.files))
	for i, f := range r.files {
		names[i] = f.Name
	}

	site := c.opts.Site
	asm := page.NewAssembler(
		templates.NewLoader(c.opts.TemplateDir),
		navigation.Build(names, language.Make(site.Language)),
		page.Site{Stylesheet: c.opts.Stylesheet, Copyright: site.Copyright, Language: site.Language, Generator: site.Generator},
		page.Options{Minify: c.opts.Minify},
	)
	norm := normalize.New(c.pageDefaults())

	r.pages = make([]*page.Artifact, len(r.files))
	outlines := make([]markdown.Outline, len(r.files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.workers())
	for i, f := range r.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			art, ol, err := c.compileFile(f, norm, asm)
			if err != nil {
				return &FileError{Path: f.Path, Err: err}
			}
			r.pages[i], outlines[i] = art, ol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.outlines = make(map[string]markdown.Outline, len(outlines))
	for i, f := range r.files {
		r.outlines[f.Name] = outlines[i]
	}
	return nil
}

func (c *Compiler) compileFile(f ContentFile, norm *normalize.Normalizer, asm *page.Assembler) (*page.Artifact, markdown.Outline, error) {
	res, err := c.extractor.Extract(f.Name, f.Raw)
	if err != nil {
		return nil, markdown.Outline{}, err
	}
	for _, a := range res.Attempts {
		slog.Warn("Metadata block did not parse, trying next format",
			logfields.File(f.Name), logfields.Format(a.Format.String()), logfields.Error(a.Err))
	}

	np, err := norm.Normalize(res.Metadata)
	if err != nil {
		return nil, markdown.Outline{}, err
	}
	body, err := c.renderer.Render([]byte(res.Body))
	if err != nil {
		return nil, markdown.Outline{}, fmt.Errorf("%w: %w", errRenderBody, err)
	}
	art, err := asm.Assemble(f.Name, np, body)
	if err != nil {
		return nil, markdown.Outline{}, err
	}
	if art.Fingerprint, err = page.Fingerprint(res.Metadata, res.Body); err != nil {
		return nil, markdown.Outline{}, fmt.Errorf("fingerprint: %w", err)
	}
	return art, markdown.Analyze([]byte(res.Body), c.opts.Render), nil
}

// pageDefaults are site values every page inherits unless it sets them.
func (c *Compiler) pageDefaults() *metadata.Metadata {
	m := metadata.New()
	for _, kv := range [][2]string{
		{"language", c.opts.Site.Language},
		{"author", c.opts.Site.Author},
		{"copyright", c.opts.Site.Copyright},
		{"generator", c.opts.Site.Generator},
	} {
		if kv[1] != "" {
			_ = m.Set(kv[0], kv[1])
		}
	}
	return m
}

func (c *Compiler) aggregate(_ context.Context, r *run) error {
	sort.SliceStable(r.pages, func(i, j int) bool { return r.pages[i].SourceName < r.pages[j].SourceName })
	r.aggregate = artifacts.NewAggregate(c.opts.Site, r.pages)

	for _, p := range r.pages {
		prev, seen := r.previous[p.SourceName]
		changed := !seen || prev != p.Fingerprint
		if !changed {
			r.report.Unchanged++
		}
		r.report.Pages = append(r.report.Pages, PageRecord{
			Source:      p.SourceName,
			Output:      p.OutputName,
			Template:    p.Template,
			Fingerprint: p.Fingerprint,
			Changed:     changed,
			Headings:    r.outlines[p.SourceName].Headings,
			Links:       r.outlines[p.SourceName].Destinations(),
		})
	}
	return nil
}

func (c *Compiler) generate(ctx context.Context, r *run) error {
	generated, err := artifacts.GenerateAll(ctx, r.aggregate, artifacts.Generators(c.opts.Artifacts))
	if err != nil {
		return err
	}
	r.generated = generated
	return nil
}

func (c *Compiler) write(_ context.Context, r *run) error {
	if err := r.stage.begin(); err != nil {
		return err
	}
	for _, p := range r.pages {
		if err := r.stage.write(p.OutputName, []byte(p.HTML)); err != nil {
			return err
		}
	}
	for _, a := range r.generated {
		if len(a.Content) == 0 {
			slog.Debug("Skipping empty artifact", logfields.Artifact(a.Filename))
			continue
		}
		if err := r.stage.write(a.Filename, a.Content); err != nil {
			return err
		}
		r.report.Artifacts = append(r.report.Artifacts, a.Filename)
		c.recorder.IncArtifact(string(a.Kind))
	}

	assets, err := copyAssets(c.opts.TemplateDir, r.stage)
	if err != nil {
		return err
	}
	r.report.Assets = assets

	return r.stage.promote()
}
