package extract

import (
	"sort"
	"strings"
)

// abbreviations maps a full name fragment to the short forms people type.
// Short forms that are already substrings of the fragment are listed anyway
// so that Expansions can resolve them.
var abbreviations = map[string][]string{
	"东京电子":     {"东电"},
	"中国工商银行":   {"工行", "工商银行"},
	"中国建设银行":   {"建行", "建设银行"},
	"中国农业银行":   {"农行", "农业银行"},
	"中国银行":     {"中行"},
	"招商银行":     {"招行"},
	"中国石油化工":   {"中石化"},
	"中国石油天然气":  {"中石油"},
	"中国海洋石油":   {"中海油"},
	"宝山钢铁":     {"宝钢"},
	"中国人寿保险":   {"国寿", "中国人寿"},
	"中国太平洋保险":  {"太保", "太平洋保险"},
	"中国平安保险":   {"平安"},
	"中国神华能源":   {"神华"},
	"阿里巴巴":     {"阿里"},
	"字节跳动":     {"字节"},
	"北京嘀嘀无限":   {"滴滴"},
	"中芯国际集成电路": {"中芯"},
	"应用材料":     {"应材"},
	"长鑫存储":     {"长鑫"},
	"格力电器":     {"格力"},
	"海尔智家":     {"海尔"},
	"京东数字科技":   {"京东数科"},
	"苏宁易购":     {"苏宁"},
	"云南白药":     {"白药"},
}

// AbbreviationTable resolves full fragments to short aliases and back
type AbbreviationTable struct {
	forward map[string][]string // fragment -> shorts
	reverse map[string][]string // short -> fragments
	order   []string            // fragments, deterministic
}

// NewAbbreviationTable builds the table from the built-in list
func NewAbbreviationTable() *AbbreviationTable {
	return NewAbbreviationTableFrom(abbreviations)
}

// NewAbbreviationTableFrom builds a table from a custom fragment map
func NewAbbreviationTableFrom(entries map[string][]string) *AbbreviationTable {
	t := &AbbreviationTable{
		forward: make(map[string][]string, len(entries)),
		reverse: make(map[string][]string),
	}
	for fragment, shorts := range entries {
		t.order = append(t.order, fragment)
		t.forward[fragment] = append([]string(nil), shorts...)
	}
	// Longest fragment first, then lexical, for stable output.
	sort.Slice(t.order, func(i, j int) bool {
		li, lj := RuneLen(t.order[i]), RuneLen(t.order[j])
		if li != lj {
			return li > lj
		}
		return t.order[i] < t.order[j]
	})
	for _, fragment := range t.order {
		for _, short := range t.forward[fragment] {
			t.reverse[short] = append(t.reverse[short], fragment)
		}
	}
	return t
}

// ShortsFor returns every short alias whose full fragment occurs in name
func (t *AbbreviationTable) ShortsFor(name string) []string {
	var out []string
	for _, fragment := range t.order {
		if strings.Contains(name, fragment) {
			out = append(out, t.forward[fragment]...)
		}
	}
	return out
}

// Expansions returns the full fragments a short alias stands for
func (t *AbbreviationTable) Expansions(short string) []string {
	return t.reverse[short]
}

// IsShort reports whether s is a known short alias
func (t *AbbreviationTable) IsShort(s string) bool {
	_, ok := t.reverse[s]
	return ok
}
