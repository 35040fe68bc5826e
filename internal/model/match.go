package model

// MatchType identifies the strategy that first found a name
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchAlias   MatchType = "alias"
	MatchKeyword MatchType = "keyword"
	MatchFuzzy   MatchType = "fuzzy"
)

// MatchResult is one ranked candidate for a query
type MatchResult struct {
	Name      string    `json:"name"`
	MatchType MatchType `json:"match_type"`
	Score     int       `json:"score"` // 0-100
}

// MaxScore returns the highest score in results, or 0 when empty
func MaxScore(results []MatchResult) int {
	best := 0
	for _, r := range results {
		if r.Score > best {
			best = r.Score
		}
	}
	return best
}

// Names returns the names of results in order
func Names(results []MatchResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}
