package score

import (
	"math"
	"strings"

	"github.com/ppiankov/orgresolve/internal/model"
)

// Scorer applies the match score-fusion constants
type Scorer struct {
	cfg model.MatchConfig
}

// NewScorer creates a scorer from the match configuration
func NewScorer(cfg model.MatchConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the constants in use
func (s *Scorer) Config() model.MatchConfig {
	return s.cfg
}

// Breakdown is the transparent composition of a keyword score
type Breakdown struct {
	Prefix   int     `json:"prefix"`
	Contains int     `json:"contains"`
	Coverage int     `json:"coverage"`
	AliasKey int     `json:"alias_key"`
	Ratio    float64 `json:"coverage_ratio"`
	Total    int     `json:"total"`
	Formula  string  `json:"formula"`
}

// KeywordBreakdown scores candidate for query in the keyword strategy.
// aliasKey is true when the query is a known short alias whose expansion
// occurs in the candidate.
func (s *Scorer) KeywordBreakdown(query, candidate string, aliasKey bool) Breakdown {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	var b Breakdown
	if strings.HasPrefix(c, q) {
		b.Prefix = s.cfg.PrefixBonus
	}
	if strings.Contains(c, q) {
		b.Contains = s.cfg.ContainsBonus
	}
	b.Ratio = Coverage(q, c)
	b.Coverage = int(b.Ratio * float64(s.cfg.CoverageWeight))
	if aliasKey {
		b.AliasKey = s.cfg.AliasKeyBonus
	}

	total := b.Prefix + b.Contains + b.Coverage + b.AliasKey
	if total > 100 {
		total = 100
	}
	b.Total = total
	b.Formula = "min(prefix + contains + floor(coverage * weight) + alias_key, 100)"
	return b
}

// Keyword returns the keyword-strategy score
func (s *Scorer) Keyword(query, candidate string, aliasKey bool) int {
	return s.KeywordBreakdown(query, candidate, aliasKey).Total
}

// KeepKeyword reports whether a keyword score clears the noise floor
func (s *Scorer) KeepKeyword(score int) bool {
	return score >= s.cfg.KeywordMinScore
}

// Fuzzy returns the fuzzy score for candidate and whether it clears the
// similarity threshold. Both strings are compared lower-cased.
func (s *Scorer) Fuzzy(query, candidate string) (int, bool) {
	ratio := Ratio(strings.ToLower(query), strings.ToLower(candidate))
	if ratio <= s.cfg.FuzzyThreshold {
		return 0, false
	}
	return int(math.Round(ratio * 100)), true
}

// Coverage is the fraction of query runes (with repetition) that occur
// anywhere in candidate
func Coverage(query, candidate string) float64 {
	runes := []rune(query)
	if len(runes) == 0 {
		return 0
	}
	hit := 0
	for _, r := range runes {
		if strings.ContainsRune(candidate, r) {
			hit++
		}
	}
	return float64(hit) / float64(len(runes))
}
