// Package pipeline wires the catalog, matcher, gate, synthesis engine,
// supplementation scheduler and registry client into one resolver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/orgresolve/internal/alias"
	"github.com/ppiankov/orgresolve/internal/cache"
	"github.com/ppiankov/orgresolve/internal/catalog"
	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/gate"
	"github.com/ppiankov/orgresolve/internal/llm"
	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/match"
	"github.com/ppiankov/orgresolve/internal/metrics"
	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/registry"
	"github.com/ppiankov/orgresolve/internal/synth"
	"github.com/ppiankov/orgresolve/internal/worker"
)

// Pipeline is the composition root. It owns the catalog index and passes
// it to every collaborator.
type Pipeline struct {
	cfg       *model.Config
	index     *catalog.Index
	aliases   *alias.Table
	matcher   *match.Matcher
	gate      *gate.SpecificityGate
	engine    *synth.Engine
	scheduler *worker.Scheduler
	registry  *registry.Client
}

// Option configures a Pipeline
type Option func(*options)

type options struct {
	namer    synth.Namer
	registry []registry.Option
	seed     []model.CatalogEntry
	seedSet  bool
}

// WithNamer sets the synthesis namer instead of building one from the LLM config
func WithNamer(n synth.Namer) Option {
	return func(o *options) { o.namer = n }
}

// WithRegistryOptions passes options to the registry client
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(o *options) { o.registry = append(o.registry, opts...) }
}

// WithSeed replaces the startup seed entries
func WithSeed(entries []model.CatalogEntry) Option {
	return func(o *options) {
		o.seed = entries
		o.seedSet = true
	}
}

// New builds a pipeline, seeds the catalog and starts the scheduler
func New(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	seed := o.seed
	if !o.seedSet {
		var err error
		seed, err = startupSeed(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}

	extractor := extract.NewKeywordExtractor()
	index := catalog.New(
		catalog.WithExtractor(extractor),
		catalog.WithRebuildHook(metrics.ObserveCatalog),
	)
	index.InsertBatch(seed)

	seedNames := make([]string, len(seed))
	for i, e := range seed {
		seedNames[i] = e.Name
	}
	aliases := alias.NewDefaultBuilder().AddPinyin(seedNames).Build()

	namer := o.namer
	if namer == nil && cfg.LLM.Provider != "" {
		n, err := llm.NewNamer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			logging.Warn(context.Background(), "LLM namer disabled", "error", err)
		} else {
			namer = n
		}
	}

	engineOpts := []synth.Option{
		synth.WithMaxEntries(cfg.Supplement.MaxEntries),
		synth.WithAbbreviations(extractor.Abbreviations()),
	}
	if namer != nil {
		engineOpts = append(engineOpts, synth.WithNamer(namer))
	}

	reg, err := registry.NewClient(cfg.Registry, cfg.Cache,
		append([]registry.Option{registry.WithCache(cache.New(cfg.Cache))}, o.registry...)...)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}

	p := &Pipeline{
		cfg:      cfg,
		index:    index,
		aliases:  aliases,
		matcher:  match.NewMatcher(index, aliases, cfg.Match, cfg.Catalog.MaxQueryRunes),
		gate:     gate.New(cfg.Gate, gate.WithMaxQueryRunes(cfg.Catalog.MaxQueryRunes)),
		engine:   synth.New(cfg.Supplement.RandomSeed, engineOpts...),
		registry: reg,
	}
	p.scheduler = worker.NewScheduler(cfg.Supplement, p.supplement, p.count)

	logging.Info(context.Background(), "catalog ready",
		"names", index.Len(), "aliases", aliases.Len(), "registry_sources", reg.Sources())
	return p, nil
}

func startupSeed(cfg model.CatalogConfig) ([]model.CatalogEntry, error) {
	var seed []model.CatalogEntry
	if !cfg.SkipBuiltin {
		seed = catalog.BuiltinSeed()
	}
	if cfg.SeedFile != "" {
		extra, err := catalog.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed file: %w", err)
		}
		seed = append(seed, extra...)
	}
	return seed, nil
}

// Close stops the scheduler. Running tasks are cancelled.
func (p *Pipeline) Close() {
	p.scheduler.Close()
}

// Index returns the catalog index
func (p *Pipeline) Index() *catalog.Index {
	return p.index
}

// Config returns the effective configuration
func (p *Pipeline) Config() *model.Config {
	return p.cfg
}

// Seed inserts entries and rebuilds once. It returns how many were new.
func (p *Pipeline) Seed(entries []model.CatalogEntry) int {
	return p.index.InsertBatch(entries)
}

// AddEntry inserts one entry with the same rebuild discipline as Seed
func (p *Pipeline) AddEntry(entry model.CatalogEntry) (bool, error) {
	if extract.Normalize(entry.Name) == "" {
		return false, model.NewError(model.KindInvalidInput, "catalog.add", fmt.Errorf("empty name"))
	}
	if entry.Origin == "" {
		entry.Origin = model.OriginManual
	}
	return p.index.Add(entry), nil
}

// Search ranks catalog names for query. It never blocks on I/O. A limit
// of zero or less uses the configured default.
func (p *Pipeline) Search(query string, limit int) []model.MatchResult {
	if limit <= 0 {
		limit = p.cfg.Catalog.DefaultLimit
	}

	start := time.Now()
	results := p.matcher.Search(query, limit)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	outcome := "hit"
	if len(results) == 0 {
		outcome = "empty"
		if _, ok := p.matcher.PrepareQuery(query); !ok {
			outcome = "too_short"
		}
	}
	metrics.SearchTotal.WithLabelValues(outcome).Inc()
	for _, r := range results {
		metrics.ResultsByType.WithLabelValues(string(r.MatchType)).Inc()
	}
	return results
}

// Resolve implements worker.Resolver for batch search
func (p *Pipeline) Resolve(ctx context.Context, query string, limit int) ([]model.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Search(query, limit), nil
}

// Suggest returns autocomplete names for a partial query
func (p *Pipeline) Suggest(partial string) []string {
	if _, ok := p.matcher.PrepareQuery(partial); !ok {
		return []string{}
	}
	return model.Names(p.Search(partial, p.cfg.Catalog.SuggestLimit))
}

// Popular returns well-known names present in the catalog
func (p *Pipeline) Popular(limit int) []string {
	if limit <= 0 {
		limit = p.cfg.Catalog.PopularLimit
	}
	return p.index.Popular(limit)
}

// Evaluate runs the specificity gate over results
func (p *Pipeline) Evaluate(query string, results []model.MatchResult) model.Decision {
	d := p.gate.Evaluate(query, results)
	for _, s := range d.Signals {
		metrics.GateSignals.WithLabelValues(string(s.Type)).Inc()
	}
	return d
}

// IntelligentResult is the answer to an intelligent search
type IntelligentResult struct {
	Query               string              `json:"query"`
	Results             []model.MatchResult `json:"results"`
	Signals             []model.Signal      `json:"signals"`
	SupplementTriggered bool                `json:"supplement_triggered"`
	EstimatedSeconds    int                 `json:"estimated_time"`
	TaskID              string              `json:"task_id,omitempty"`
	Message             string              `json:"message"`
}

// IntelligentSearch searches, asks the gate whether the answer is
// adequate and, when it is not, starts supplementation in the background.
// The current results are always returned.
func (p *Pipeline) IntelligentSearch(ctx context.Context, query string, limit int) IntelligentResult {
	results := p.Search(query, limit)
	res := IntelligentResult{
		Query:   extract.Normalize(query),
		Results: results,
		Signals: []model.Signal{},
	}

	if _, ok := p.matcher.PrepareQuery(query); !ok {
		res.Message = "请输入至少2个字符"
		return res
	}

	decision := p.Evaluate(query, results)
	res.Signals = decision.Signals
	if !decision.Supplement || !p.cfg.Supplement.Enabled {
		res.Message = fmt.Sprintf("找到 %d 个相关企业", len(results))
		return res
	}

	task, err := p.scheduler.Trigger(ctx, query)
	if err != nil {
		logging.Warn(ctx, "supplementation not started", "query", query, "error", err)
		res.Message = fmt.Sprintf("找到 %d 个相关企业", len(results))
		return res
	}

	res.SupplementTriggered = true
	res.EstimatedSeconds = task.EstimatedSeconds()
	res.TaskID = task.ID
	res.Message = fmt.Sprintf("正在为您补充更多企业数据，预计需要 %d 秒", res.EstimatedSeconds)
	return res
}

// TriggerSupplementation starts background synthesis for query
func (p *Pipeline) TriggerSupplementation(ctx context.Context, query string) (model.SupplementationTask, error) {
	if !p.cfg.Supplement.Enabled {
		return model.SupplementationTask{}, model.NewError(model.KindInvalidInput, "supplement.trigger", fmt.Errorf("supplementation is disabled"))
	}
	if _, ok := p.matcher.PrepareQuery(query); !ok {
		return model.SupplementationTask{}, model.NewError(model.KindInputTooShort, "supplement.trigger", nil)
	}
	return p.scheduler.Trigger(ctx, query)
}

// PollSupplementation re-runs the matcher and reports whether results
// appeared since the task was triggered
func (p *Pipeline) PollSupplementation(query string) model.PollResult {
	return p.scheduler.Poll(query)
}

// WaitSupplementation blocks until the task for query is done
func (p *Pipeline) WaitSupplementation(ctx context.Context, query string) error {
	return p.scheduler.Wait(ctx, query)
}

// Task returns the current or last task for query
func (p *Pipeline) Task(query string) (model.SupplementationTask, bool) {
	return p.scheduler.Task(query)
}

// supplement generates entries for query and writes them with one
// insert-and-rebuild under the catalog write lock
func (p *Pipeline) supplement(ctx context.Context, query string) (int, error) {
	res := p.engine.Generate(ctx, query)
	if len(res.Entries) == 0 {
		return 0, model.NewError(model.KindSynthesisDegenerate, "supplement.generate", fmt.Errorf("no entries for %q", query))
	}
	added := p.index.InsertBatch(res.Entries)
	metrics.SupplementEntries.WithLabelValues(string(res.Path)).Add(float64(added))
	logging.Debug(ctx, "entries synthesized", "query", query, "path", res.Path, "generated", len(res.Entries), "added", added)
	return added, nil
}

// count is the poll re-count: the number of catalog names the query
// matches at all. It is not capped by the display limit, so growth is
// visible even when the first search already filled a page.
func (p *Pipeline) count(query string) int {
	return len(p.matcher.Search(query, p.index.Len()))
}

// Lookup returns the profile for name. A registry hit is added to the
// catalog. When no registry source knows the name, a catalog entry with
// the same normalized name is returned instead.
func (p *Pipeline) Lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	entry, err := p.registry.Lookup(ctx, name)
	if err == nil {
		if _, addErr := p.AddEntry(entry); addErr != nil {
			logging.Warn(ctx, "registry entry not added", "name", entry.Name, "error", addErr)
		}
		return entry, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.CatalogEntry{}, err
	}

	if known, ok := p.index.Get(extract.Normalize(name)); ok {
		known.Attributes.Enrich(known.Name, time.Now())
		return known, nil
	}
	return model.CatalogEntry{}, err
}

// CheckIndex verifies the keyword index and rebuilds it from the canonical
// list when it is inconsistent. The inconsistency is logged, not returned.
func (p *Pipeline) CheckIndex(ctx context.Context) {
	if err := p.index.Repair(); err != nil {
		logging.Warn(ctx, "keyword index rebuilt", "error", err)
	}
}
