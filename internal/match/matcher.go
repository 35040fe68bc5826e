// Package match ranks catalog names against a user query.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/orgresolve/internal/alias"
	"github.com/ppiankov/orgresolve/internal/catalog"
	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/score"
)

// Matcher runs the alias, exact, keyword and fuzzy strategies in that
// order against one catalog snapshot and fuses their results.
type Matcher struct {
	index    *catalog.Index
	aliases  *alias.Table
	abbr     *extract.AbbreviationTable
	scorer   *score.Scorer
	cfg      model.MatchConfig
	maxRunes int
}

// NewMatcher creates a matcher over index. A nil alias table disables the
// alias strategy.
func NewMatcher(index *catalog.Index, aliases *alias.Table, cfg model.MatchConfig, maxQueryRunes int) *Matcher {
	if aliases == nil {
		aliases = alias.NewBuilder().Build()
	}
	return &Matcher{
		index:    index,
		aliases:  aliases,
		abbr:     index.Extractor().Abbreviations(),
		scorer:   score.NewScorer(cfg),
		cfg:      cfg,
		maxRunes: maxQueryRunes,
	}
}

// Scorer returns the scorer used for keyword and fuzzy results
func (m *Matcher) Scorer() *score.Scorer {
	return m.scorer
}

// PrepareQuery normalizes query and truncates it to the configured maximum.
// The second value is false when the result is too short to search.
func (m *Matcher) PrepareQuery(query string) (string, bool) {
	q := extract.PrepareQuery(query, m.maxRunes)
	return q, extract.RuneLen(q) >= m.cfg.MinQueryRunes
}

// Search returns at most limit results for query, highest score first.
// Queries shorter than the minimum length yield an empty result.
func (m *Matcher) Search(query string, limit int) []model.MatchResult {
	q, ok := m.PrepareQuery(query)
	if !ok || limit <= 0 {
		return []model.MatchResult{}
	}

	snap := m.index.Snapshot()
	c := newCollector()

	m.aliasStrategy(snap, q, c)
	m.exactStrategy(snap, q, c)
	m.keywordStrategy(snap, q, c)
	if c.len() < limit {
		m.fuzzyStrategy(snap, q, c)
	}

	return c.ranked(limit)
}

func (m *Matcher) aliasStrategy(snap *catalog.Snapshot, q string, c *collector) {
	for _, fragment := range m.aliases.Lookup(q) {
		targets := append([]string{fragment}, m.abbr.Expansions(fragment)...)
		snap.ForEachName(func(name string) bool {
			for _, t := range targets {
				if strings.Contains(name, t) {
					c.add(name, model.MatchAlias, m.cfg.AliasScore)
					break
				}
			}
			return true
		})
	}
}

func (m *Matcher) exactStrategy(snap *catalog.Snapshot, q string, c *collector) {
	snap.ForEachName(func(name string) bool {
		if strings.Contains(name, q) {
			c.add(name, model.MatchExact, m.cfg.ExactScore)
		}
		return true
	})
}

func (m *Matcher) keywordStrategy(snap *catalog.Snapshot, q string, c *collector) {
	expansions := m.abbr.Expansions(q)
	for _, key := range snap.KeysContaining(q) {
		for _, name := range snap.LookupKeyword(key) {
			s := m.scorer.Keyword(q, name, containsAny(name, expansions))
			if m.scorer.KeepKeyword(s) {
				c.add(name, model.MatchKeyword, s)
			}
		}
	}
}

func (m *Matcher) fuzzyStrategy(snap *catalog.Snapshot, q string, c *collector) {
	snap.ForEachName(func(name string) bool {
		if c.has(name) {
			return true
		}
		if s, ok := m.scorer.Fuzzy(q, name); ok {
			c.add(name, model.MatchFuzzy, s)
		}
		return true
	})
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// collector de-duplicates results by name. The first strategy to find a
// name fixes its match type and discovery position; the score is the
// maximum seen across strategies.
type collector struct {
	order []model.MatchResult
	pos   map[string]int
}

func newCollector() *collector {
	return &collector{pos: make(map[string]int)}
}

func (c *collector) add(name string, t model.MatchType, s int) {
	s = int(math.Max(0, math.Min(100, float64(s))))
	if i, ok := c.pos[name]; ok {
		if s > c.order[i].Score {
			c.order[i].Score = s
		}
		return
	}
	c.pos[name] = len(c.order)
	c.order = append(c.order, model.MatchResult{Name: name, MatchType: t, Score: s})
}

func (c *collector) has(name string) bool {
	_, ok := c.pos[name]
	return ok
}

func (c *collector) len() int {
	return len(c.order)
}

func (c *collector) ranked(limit int) []model.MatchResult {
	out := make([]model.MatchResult, len(c.order))
	copy(out, c.order)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
