package extract

import (
	"sort"
	"strings"
)

// legalSuffixes are removed from names before keyword extraction.
// Sorted longest first at init.
var legalSuffixes = []string{
	"有限公司", "股份有限公司", "集团有限公司", "控股有限公司",
	"科技有限公司", "投资有限公司", "发展有限公司", "管理有限公司",
	"集团股份有限公司", "控股股份有限公司", "有限责任公司", "股份公司",
}

// legalForms are the endings that make a string look like a complete
// registered name. Used to complete partially typed queries.
var legalForms = []string{"有限公司", "股份有限公司", "有限责任公司"}

func init() {
	sortLongestFirst(legalSuffixes)
}

func sortLongestFirst(list []string) {
	sort.SliceStable(list, func(i, j int) bool {
		return RuneLen(list[i]) > RuneLen(list[j])
	})
}

// LegalSuffixes returns the suffix table, longest first
func LegalSuffixes() []string {
	out := make([]string, len(legalSuffixes))
	copy(out, legalSuffixes)
	return out
}

// StripSuffixes removes legal-form suffixes and parenthetical region or
// group qualifiers from name. Removal is longest match first and repeats
// until nothing changes, so stacked forms like 集团股份有限公司 and
// "(中国)...有限公司" are fully removed.
func StripSuffixes(name string) string {
	clean := Normalize(name)
	for {
		before := clean
		for _, suffix := range legalSuffixes {
			clean = strings.ReplaceAll(clean, suffix, "")
		}
		clean = stripQualifiers(clean)
		if clean == before {
			break
		}
	}
	return strings.TrimSpace(clean)
}

// stripQualifiers removes "(X)" groups whose content is a region or a
// group qualifier. Other parenthetical text is kept.
func stripQualifiers(s string) string {
	var b strings.Builder
	rest := s
	for {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], ')')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		inner := rest[open+1 : open+end]
		b.WriteString(rest[:open])
		if !isQualifier(inner) {
			b.WriteString(rest[open : open+end+1])
		}
		rest = rest[open+end+1:]
	}
	return b.String()
}

// PrimarySegment returns the part of name before the first parenthesis
func PrimarySegment(name string) string {
	name = Normalize(name)
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

// HasLegalForm reports whether s ends with a complete legal form
func HasLegalForm(s string) bool {
	for _, form := range legalForms {
		if strings.HasSuffix(s, form) {
			return true
		}
	}
	return false
}

// CompleteLegalForm turns a query that ends with a truncated legal form
// ("…光电有", "…有限公", "…公司") into a complete registered name. Queries
// that end with a full form are returned unchanged; others get 有限公司
// appended.
func CompleteLegalForm(query string) string {
	query = strings.TrimSpace(query)
	if query == "" || HasLegalForm(query) {
		return query
	}
	// a bare 公司 is a legal form missing its 有限 or 股份 part
	if base, ok := strings.CutSuffix(query, "公司"); ok && base != "" {
		return CompleteLegalForm(base)
	}
	runes := []rune(query)
	for _, form := range legalForms {
		formRunes := []rune(form)
		for n := len(formRunes) - 1; n >= 1; n-- {
			if len(runes) > n && string(runes[len(runes)-n:]) == string(formRunes[:n]) {
				return string(runes[:len(runes)-n]) + form
			}
		}
	}
	return query + "有限公司"
}
