package extract

const (
	minKeyword = 2
	maxKeyword = 4
)

// KeywordExtractor turns organization names into indexable keys
type KeywordExtractor struct {
	abbreviations *AbbreviationTable
}

// NewKeywordExtractor creates an extractor with the built-in abbreviation table
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{abbreviations: NewAbbreviationTable()}
}

// NewKeywordExtractorWith creates an extractor with a custom abbreviation table
func NewKeywordExtractorWith(abbr *AbbreviationTable) *KeywordExtractor {
	if abbr == nil {
		abbr = NewAbbreviationTableFrom(nil)
	}
	return &KeywordExtractor{abbreviations: abbr}
}

// Abbreviations returns the table the extractor consults
func (e *KeywordExtractor) Abbreviations() *AbbreviationTable {
	return e.abbreviations
}

// Extract returns the de-duplicated keys for name in emission order:
// for each script run, the full run followed by its 2-4 rune substrings,
// then the short aliases of any known fragment.
func (e *KeywordExtractor) Extract(name string) []string {
	clean := StripSuffixes(name)
	if clean == "" {
		return nil
	}

	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, run := range ScriptRuns(clean) {
		runes := []rune(run)
		if len(runes) < minKeyword {
			continue
		}
		add(run)
		for i := range runes {
			for j := i + minKeyword; j <= i+maxKeyword && j <= len(runes); j++ {
				add(string(runes[i:j]))
			}
		}
	}

	for _, short := range e.abbreviations.ShortsFor(clean) {
		add(short)
	}

	return keys
}
