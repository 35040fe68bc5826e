package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds full-width forms (（）, Ａ, １) to their ASCII equivalents
// with NFKC, trims the result and collapses internal whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// PrepareQuery normalizes a search query and cuts it to at most maxRunes
// runes. A maxRunes of zero or less leaves the length alone.
func PrepareQuery(query string, maxRunes int) string {
	q := Normalize(query)
	if maxRunes > 0 {
		if r := []rune(q); len(r) > maxRunes {
			q = string(r[:maxRunes])
		}
	}
	return q
}

// NormalizeAlias lower-cases a Latin/pinyin token and drops every character
// that is not a letter or digit, so "Dong Dian" and "dong-dian" collapse
// to "dongdian".
func NormalizeAlias(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsScript reports whether r belongs to the CJK unified ideographs block
// used for keyword runs.
func IsScript(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// ScriptRuns returns the maximal runs of script characters in s.
// Digits, Latin letters and punctuation act as separators.
func ScriptRuns(s string) []string {
	var runs []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		if IsScript(r) {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return runs
}

// RuneLen returns the number of runes in s
func RuneLen(s string) int {
	return len([]rune(s))
}

// HasScript reports whether s contains at least one script character
func HasScript(s string) bool {
	for _, r := range s {
		if IsScript(r) {
			return true
		}
	}
	return false
}
