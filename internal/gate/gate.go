// Package gate decides whether a result set answers a query well enough,
// or whether the catalog is missing a more specific entity.
package gate

import (
	"strings"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/model"
)

// SpecificityGate evaluates the supplementation rules in order
type SpecificityGate struct {
	cfg      model.GateConfig
	maxRunes int
}

// Option configures a gate
type Option func(*SpecificityGate)

// WithMaxQueryRunes cuts queries to n runes before evaluation, the same
// way the matcher cuts them before searching
func WithMaxQueryRunes(n int) Option {
	return func(g *SpecificityGate) { g.maxRunes = n }
}

// New creates a gate with the given thresholds
func New(cfg model.GateConfig, opts ...Option) *SpecificityGate {
	g := &SpecificityGate{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ShouldSupplement reports whether any rule fires for query and results
func (g *SpecificityGate) ShouldSupplement(query string, results []model.MatchResult) bool {
	return g.Evaluate(query, results).Supplement
}

// Evaluate runs every rule and returns one signal per fired rule.
// Results are expected in ranked order; the first highest-scoring result
// is treated as the best match.
func (g *SpecificityGate) Evaluate(query string, results []model.MatchResult) model.Decision {
	query = extract.PrepareQuery(query, g.maxRunes)
	rules := []func() (bool, model.Signal){
		func() (bool, model.Signal) { return NoResults(results) },
		func() (bool, model.Signal) { return WeakFew(results, g.cfg.FewResults, g.cfg.WeakScore) },
		func() (bool, model.Signal) {
			return LongUnmatched(query, results, g.cfg.LongQueryRunes, g.cfg.StrongScore)
		},
		func() (bool, model.Signal) { return SuffixWeak(query, results, g.cfg.SuffixQueryScore) },
		func() (bool, model.Signal) { return LessSpecific(query, results, g.cfg.ExtraRunes) },
		func() (bool, model.Signal) { return RegionUncovered(query, results) },
	}

	d := model.Decision{Signals: []model.Signal{}}
	for _, rule := range rules {
		if fired, sig := rule(); fired {
			d.Supplement = true
			d.Signals = append(d.Signals, sig)
		}
	}
	return d
}

// NoResults fires when nothing matched (rule 1)
func NoResults(results []model.MatchResult) (bool, model.Signal) {
	if len(results) > 0 {
		return false, model.Signal{}
	}
	return true, model.Signal{
		Type:        model.SignalNoResults,
		Description: "Catalog has no candidate for the query",
	}
}

// WeakFew fires when at most few results exist and none reaches weak (rule 2)
func WeakFew(results []model.MatchResult, few, weak int) (bool, model.Signal) {
	best := model.MaxScore(results)
	if len(results) == 0 || len(results) > few || best >= weak {
		return false, model.Signal{}
	}
	return true, model.Signal{
		Type:        model.SignalWeakFew,
		Description: "Few results, all with low confidence",
		Data: map[string]interface{}{
			"count":      len(results),
			"best_score": best,
			"threshold":  weak,
		},
	}
}

// LongUnmatched fires for a long query that no result contains literally
// and that no result matches strongly (rule 3)
func LongUnmatched(query string, results []model.MatchResult, longRunes, strong int) (bool, model.Signal) {
	n := extract.RuneLen(query)
	if n <= longRunes || model.MaxScore(results) >= strong {
		return false, model.Signal{}
	}
	for _, r := range results {
		if strings.Contains(r.Name, query) {
			return false, model.Signal{}
		}
	}
	return true, model.Signal{
		Type:        model.SignalLongUnmatched,
		Description: "Long query is not contained in any result",
		Data: map[string]interface{}{
			"query_runes": n,
			"best_score":  model.MaxScore(results),
			"threshold":   strong,
		},
	}
}

// SuffixWeak fires when the query carries a corporate-form or sector token
// and no result scores at least minScore (rule 4)
func SuffixWeak(query string, results []model.MatchResult, minScore int) (bool, model.Signal) {
	token := firstContained(query, suffixTokens)
	if token == "" || model.MaxScore(results) >= minScore {
		return false, model.Signal{}
	}
	return true, model.Signal{
		Type:        model.SignalSuffixWeak,
		Description: "Query reads like a registered name but no result is close",
		Data: map[string]interface{}{
			"token":      token,
			"best_score": model.MaxScore(results),
			"threshold":  minScore,
		},
	}
}

// LessSpecific fires when the query carries information the best result
// lacks (rule 5). Two cases:
//   - the stripped query contains every main word of the stripped best name
//     and is longer by more than extraRunes runes;
//   - the query is longer than the best name's primary segment and has a
//     technical keyword that segment lacks.
//
// Equal stripped lengths never count as more specific.
func LessSpecific(query string, results []model.MatchResult, extraRunes int) (bool, model.Signal) {
	best, ok := Best(results)
	if !ok {
		return false, model.Signal{}
	}

	sq := extract.StripSuffixes(query)
	sb := extract.StripSuffixes(best.Name)
	words := MainWords(sb)
	if len(words) > 0 && containsAll(sq, words) &&
		extract.RuneLen(sq)-extract.RuneLen(sb) > extraRunes {
		return true, model.Signal{
			Type:        model.SignalLessSpecific,
			Description: "Query extends the best match with more detail",
			Data: map[string]interface{}{
				"best":          best.Name,
				"stripped":      sq,
				"best_stripped": sb,
				"main_words":    words,
			},
		}
	}

	primary := extract.PrimarySegment(best.Name)
	if extract.RuneLen(query) > extract.RuneLen(primary) {
		for _, kw := range technicalKeywords {
			if strings.Contains(query, kw) && !strings.Contains(primary, kw) {
				return true, model.Signal{
					Type:        model.SignalLessSpecific,
					Description: "Query names a line of business the best match lacks",
					Data: map[string]interface{}{
						"best":    best.Name,
						"primary": primary,
						"keyword": kw,
					},
				}
			}
		}
	}
	return false, model.Signal{}
}

// RegionUncovered fires when the query names a region that no result
// mentions (rule 6)
func RegionUncovered(query string, results []model.MatchResult) (bool, model.Signal) {
	for _, region := range extract.FindRegions(query) {
		covered := false
		for _, r := range results {
			if strings.Contains(r.Name, region) {
				covered = true
				break
			}
		}
		if !covered {
			return true, model.Signal{
				Type:        model.SignalRegionUncovered,
				Description: "Query names a region absent from every result",
				Data:        map[string]interface{}{"region": region},
			}
		}
	}
	return false, model.Signal{}
}

// Best returns the first result with the highest score
func Best(results []model.MatchResult) (model.MatchResult, bool) {
	if len(results) == 0 {
		return model.MatchResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}

// MainWords returns the script runs of s with at least two runes
func MainWords(s string) []string {
	var words []string
	for _, run := range extract.ScriptRuns(s) {
		if extract.RuneLen(run) >= 2 {
			words = append(words, run)
		}
	}
	return words
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func firstContained(s string, tokens []string) string {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return t
		}
	}
	return ""
}
