// Package synth fabricates plausible placeholder catalog entries for
// queries the catalog cannot answer. Generated records are marked
// synthetic and are not verified facts.
package synth

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/model"
)

// Namer proposes registered-name variants for a query. Implementations
// may call remote services and may fail; the engine falls back to its
// templates when they do.
type Namer interface {
	IsEnabled() bool
	SuggestNames(ctx context.Context, query string, count int) ([]string, error)
}

// Path identifies how a batch of entries was produced
type Path string

const (
	PathCurated Path = "curated"
	PathLLM     Path = "llm"
	PathGeneric Path = "generic"
	PathEmpty   Path = "empty"
)

// placeholderName is used when the query carries nothing to build on
const placeholderName = "未命名企业"

// Result is the output of one Generate call
type Result struct {
	Entries []model.CatalogEntry
	Path    Path
}

// Engine generates synthetic catalog entries.
//
// Thread Safety: safe for concurrent use; the random source is guarded.
type Engine struct {
	mu    sync.Mutex
	rng   *rand.Rand
	max   int
	namer Namer
	abbr  *extract.AbbreviationTable
	now   func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithNamer enables LLM name variants for uncurated roots
func WithNamer(n Namer) Option {
	return func(e *Engine) { e.namer = n }
}

// WithMaxEntries caps the number of entries per query
func WithMaxEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.max = n
		}
	}
}

// WithAbbreviations sets the table used to match curated roots by
// their short forms
func WithAbbreviations(t *extract.AbbreviationTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.abbr = t
		}
	}
}

// WithClock overrides the clock used for derived fields
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine. A zero seed seeds from the clock.
func New(seed int64, opts ...Option) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		rng:  rand.New(rand.NewSource(seed)),
		max:  5,
		abbr: extract.NewAbbreviationTable(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate returns between one and the configured maximum entries for
// query. It never fails: an empty query yields a single uninformative
// entry, and namer errors fall back to the template generator.
func (e *Engine) Generate(ctx context.Context, query string) Result {
	q := extract.Normalize(query)
	if !extract.HasScript(q) && extract.NormalizeAlias(q) == "" {
		return Result{
			Entries: []model.CatalogEntry{model.NewEntry(placeholderName, model.OriginSynthetic)},
			Path:    PathEmpty,
		}
	}

	names, path := e.names(ctx, q)
	names = e.ensureQueryCovered(q, names)
	if len(names) > e.max {
		names = names[:e.max]
	}

	entries := make([]model.CatalogEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, model.CatalogEntry{
			Name:       name,
			Attributes: e.attributesFor(name),
			Origin:     model.OriginSynthetic,
		})
	}
	return Result{Entries: entries, Path: path}
}

func (e *Engine) names(ctx context.Context, q string) ([]string, Path) {
	if _, variants := curatedFor(q, e.abbr.ShortsFor); len(variants) > 0 {
		return dedupe(variants), PathCurated
	}

	if e.namer != nil && e.namer.IsEnabled() {
		suggested, err := e.namer.SuggestNames(ctx, q, e.max)
		if err != nil {
			logging.Warn(ctx, "name suggestion failed, using templates", "error", err)
		} else if valid := validSuggestions(q, suggested); len(valid) > 0 {
			return valid, PathLLM
		} else {
			logging.Debug(ctx, "no usable name suggestions, using templates", "suggested", len(suggested))
		}
	}

	return e.genericNames(q), PathGeneric
}

// genericNames builds the completed query plus root variants in the
// business type's name forms, with one regional form.
func (e *Engine) genericNames(q string) []string {
	completed := extract.CompleteLegalForm(q)
	root := extract.StripSuffixes(completed)
	if root == "" {
		root = q
	}
	bt := classifyBusiness(q)

	names := []string{completed}
	stem := trimSectors(root)
	for _, form := range nameForms[bt] {
		if !strings.HasSuffix(stem, strings.TrimSuffix(form, "有限公司")) {
			names = append(names, stem+form)
		}
	}

	e.mu.Lock()
	region := e.regionFor(q, bt)
	e.mu.Unlock()
	if !strings.Contains(root, region) {
		regional := root + "(" + region + ")有限公司"
		// Keep the regional form within the cap.
		if len(names) >= e.max {
			names = append(names[:e.max-1], regional)
		} else {
			names = append(names, regional)
		}
	}
	return dedupe(names)
}

// trimSectors removes trailing sector words from root so a name form does
// not repeat them (华为技术 + 信息技术有限公司). A root made only of sector
// words is kept whole.
func trimSectors(root string) string {
	stem := root
	for {
		before := stem
		for _, w := range sectorWords {
			if trimmed, ok := strings.CutSuffix(stem, w); ok && trimmed != "" {
				stem = trimmed
				break
			}
		}
		if stem == before {
			return stem
		}
	}
}

// validSuggestions keeps names that contain the query root, use the
// script and end with a legal form
func validSuggestions(q string, names []string) []string {
	root := extract.StripSuffixes(q)
	if root == "" {
		root = q
	}
	var out []string
	for _, n := range names {
		n = extract.Normalize(n)
		if strings.Contains(n, root) && extract.HasScript(n) && extract.HasLegalForm(n) {
			out = append(out, n)
		}
	}
	return dedupe(out)
}

// ensureQueryCovered puts the completed query first unless a name already
// contains the query or the expansion of a short query, so a follow-up
// search can find what was generated.
func (e *Engine) ensureQueryCovered(q string, names []string) []string {
	targets := append([]string{q}, e.abbr.Expansions(q)...)
	for _, n := range names {
		for _, t := range targets {
			if strings.Contains(n, t) {
				return names
			}
		}
	}
	return dedupe(append([]string{extract.CompleteLegalForm(q)}, names...))
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
