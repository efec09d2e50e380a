package assembly

import (
	"html/template"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/assemble/internal/config"
	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/logfields"
	"git.home.luguber.info/inful/assemble/internal/markdown"
	"git.home.luguber.info/inful/assemble/internal/metrics"
)

// Collection groups the materials found in one directory.
type Collection struct {
	Name  string
	Items map[string]*Material
}

// Material describes one registered material.
type Material struct {
	Name string
	// Notes is the rendered "notes" front matter field, empty if absent.
	Notes template.HTML
}

// Doc is one markdown document rendered to HTML.
type Doc struct {
	Name    string
	Content template.HTML
}

// Assembly is the loaded state of one run: stores, registered partials and
// helpers. It is read-only after New except for the compiled partial cache,
// and Render calls are serialised.
type Assembly struct {
	opts     config.Options
	logger   *slog.Logger
	md       *markdown.Renderer
	recorder metrics.Recorder
	strategy Strategy

	layouts   map[string]string
	data      map[string]any
	materials map[string]*Collection
	docs      map[string]*Doc

	partials *PartialStore
	funcs    template.FuncMap

	renderMu sync.Mutex
	depth    int
}

// Option configures an Assembly.
type Option func(*Assembly)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembly) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMarkdown sets the renderer used for notes and docs.
func WithMarkdown(r *markdown.Renderer) Option {
	return func(a *Assembly) {
		if r != nil {
			a.md = r
		}
	}
}

// WithRecorder sets the metrics recorder. Defaults to metrics.NoopRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *Assembly) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithStrategy overrides the strategy selected by opts.Strategy.
func WithStrategy(s Strategy) Option {
	return func(a *Assembly) {
		if s != nil {
			a.strategy = s
		}
	}
}

// New resolves opts against the defaults and loads every store. Any error
// aborts setup; no partially loaded Assembly is returned.
func New(opts config.Options, options ...Option) (*Assembly, error) {
	resolved, err := opts.Resolve()
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "failed to resolve options").Fatal().Build()
	}

	a := &Assembly{
		opts:      resolved,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
		layouts:   map[string]string{},
		data:      map[string]any{},
		materials: map[string]*Collection{},
		docs:      map[string]*Doc{},
		partials:  NewPartialStore(),
		funcs:     template.FuncMap{},
	}
	for _, o := range options {
		o(a)
	}
	if a.md == nil {
		a.md = markdown.New()
	}
	if a.strategy == nil {
		s, err := StrategyFor(resolved.Strategy)
		if err != nil {
			return nil, foundation.WrapError(err, foundation.CategoryConfig, "unknown material strategy").Fatal().Build()
		}
		a.strategy = s
	}

	start := time.Now()
	stages := []struct {
		name string
		run  func() error
	}{
		{"layouts", func() error { return a.loadLayouts(a.opts.Layouts) }},
		{"data", func() error { return a.loadData(a.opts.Data) }},
		{"materials", func() error { return a.loadMaterials(a.opts.Materials) }},
		{"docs", func() error {
			if a.opts.SkipDocs {
				return nil
			}
			return a.loadDocs(a.opts.Docs)
		}},
	}
	for _, st := range stages {
		stageStart := time.Now()
		if err := st.run(); err != nil {
			a.logger.Error("Assembly setup failed", logfields.Stage(st.name), logfields.Error(err))
			return nil, err
		}
		a.recorder.ObserveStageDuration(st.name, time.Since(stageStart))
	}

	a.funcs["dict"] = dict
	for name, fn := range a.strategy.Funcs(a) {
		a.funcs[name] = fn
	}
	a.partials.Funcs(a.funcs)

	a.recorder.SetStoreSize("layouts", len(a.layouts))
	a.recorder.SetStoreSize("data", len(a.data))
	a.recorder.SetStoreSize("materials", a.partials.Len())
	a.recorder.SetStoreSize("docs", len(a.docs))
	a.recorder.ObserveSetupDuration(time.Since(start))

	a.logger.Debug("Assembly ready",
		slog.Int("layouts", len(a.layouts)),
		slog.Int("data", len(a.data)),
		slog.Int("collections", len(a.materials)),
		slog.Int("partials", a.partials.Len()),
		slog.Int("docs", len(a.docs)),
		slog.String("strategy", string(a.strategy.Name())),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return a, nil
}

// Options returns the resolved options.
func (a *Assembly) Options() config.Options { return a.opts }

// Layouts returns the layout store. Callers must not modify it.
func (a *Assembly) Layouts() map[string]string { return a.layouts }

// Data returns the data store. Callers must not modify it.
func (a *Assembly) Data() map[string]any { return a.data }

// Materials returns the material collections. Callers must not modify them.
func (a *Assembly) Materials() map[string]*Collection { return a.materials }

// Docs returns the docs store, nil when docs are skipped.
func (a *Assembly) Docs() map[string]*Doc {
	if a.opts.SkipDocs {
		return nil
	}
	return a.docs
}

// Partials returns the partial store.
func (a *Assembly) Partials() *PartialStore { return a.partials }

// duplicate reports a second file for an already registered identifier.
// It overwrites silently (with a warning log) unless strict mode is on.
func (a *Assembly) duplicate(store, id, path string) error {
	if a.opts.Strict.DuplicateIDs {
		return foundation.ValidationError("duplicate identifier").
			WithContext("store", store).
			WithContext("id", id).
			WithContext("file", path).
			Build()
	}
	a.logger.Warn("Duplicate identifier overwrites earlier entry",
		slog.String("store", store), slog.String("id", id), logfields.File(path))
	return nil
}
