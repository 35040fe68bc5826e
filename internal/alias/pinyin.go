package alias

import (
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/ppiankov/orgresolve/internal/extract"
)

// AddPinyin derives alias keys for the root of each name: the full
// toneless pinyin ("dongjingdianzi") and the initials ("djdz"). The root is
// the first script run of the name after suffix stripping. Roots shorter
// than two runes are skipped.
func (b *Builder) AddPinyin(names []string) *Builder {
	for _, name := range names {
		root := rootOf(name)
		if extract.RuneLen(root) < 2 {
			continue
		}
		full, initials := toPinyin(root)
		b.Add(full, root)
		if len(initials) >= 3 {
			b.Add(initials, root)
		}
	}
	return b
}

// rootOf returns the leading script run of the stripped name
func rootOf(name string) string {
	runs := extract.ScriptRuns(extract.StripSuffixes(name))
	if len(runs) == 0 {
		return ""
	}
	return runs[0]
}

func toPinyin(s string) (full string, initials string) {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{}
	}
	syllables := pinyin.LazyConvert(s, &args)

	var fb, ib strings.Builder
	for _, syl := range syllables {
		if syl == "" {
			continue
		}
		fb.WriteString(syl)
		ib.WriteByte(syl[0])
	}
	return fb.String(), ib.String()
}
