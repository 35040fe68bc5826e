package match

import (
	"reflect"
	"testing"

	"github.com/ppiankov/orgresolve/internal/alias"
	"github.com/ppiankov/orgresolve/internal/catalog"
	"github.com/ppiankov/orgresolve/internal/model"
)

func newMatcher(names ...string) (*Matcher, *catalog.Index) {
	idx := catalog.New()
	entries := make([]model.CatalogEntry, len(names))
	for i, n := range names {
		entries[i] = model.NewEntry(n, model.OriginSeed)
	}
	idx.InsertBatch(entries)

	cfg := model.DefaultConfig()
	return NewMatcher(idx, alias.Default(), cfg.Match, cfg.Catalog.MaxQueryRunes), idx
}

func TestSearch_ShortQueryIsEmpty(t *testing.T) {
	m, _ := newMatcher("阿里巴巴(中国)有限公司")

	for _, q := range []string{"", "阿", " 阿 ", "a"} {
		got := m.Search(q, 5)
		if got == nil || len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty non-nil slice", q, got)
		}
	}
}

func TestSearch_SubstringIsExact(t *testing.T) {
	m, _ := newMatcher("阿里巴巴(中国)有限公司")

	got := m.Search("阿里", 5)
	want := []model.MatchResult{{Name: "阿里巴巴(中国)有限公司", MatchType: model.MatchExact, Score: 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(阿里) = %+v, want %+v", got, want)
	}
}

func TestSearch_AbbreviationViaKeyword(t *testing.T) {
	m, _ := newMatcher("东京电子(上海)有限公司")

	got := m.Search("东电", 5)
	if len(got) != 1 {
		t.Fatalf("expected one result, got %+v", got)
	}
	if got[0].MatchType != model.MatchKeyword {
		t.Errorf("expected keyword match, got %s", got[0].MatchType)
	}
	if got[0].Score <= 0 {
		t.Errorf("expected a positive score, got %d", got[0].Score)
	}
}

func TestSearch_PhoneticAlias(t *testing.T) {
	m, _ := newMatcher("东京电子(上海)有限公司", "阿里巴巴(中国)有限公司")

	got := m.Search("dongdian", 5)
	want := []model.MatchResult{{Name: "东京电子(上海)有限公司", MatchType: model.MatchAlias, Score: 95}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(dongdian) = %+v, want %+v", got, want)
	}

	got = m.Search("Ali Baba", 5)
	if len(got) != 1 || got[0].Name != "阿里巴巴(中国)有限公司" || got[0].MatchType != model.MatchAlias {
		t.Errorf("Search(Ali Baba) = %+v", got)
	}
}

func TestSearch_AliasKeepsTypeButRaisesScore(t *testing.T) {
	// Alias finds the name first; exact later reports 100 for the same name.
	m, _ := newMatcher("alibaba阿里巴巴集团")

	got := m.Search("alibaba", 5)
	if len(got) != 1 {
		t.Fatalf("expected one result, got %+v", got)
	}
	if got[0].MatchType != model.MatchAlias || got[0].Score != 100 {
		t.Errorf("got %+v, want alias with score 100", got[0])
	}
}

func TestSearch_NoDuplicatesAndSorted(t *testing.T) {
	m, _ := newMatcher(
		"中国工商银行股份有限公司",
		"中国建设银行股份有限公司",
		"招商银行股份有限公司",
		"中国银行股份有限公司",
		"银联商务股份有限公司",
	)

	got := m.Search("银行", 10)
	seen := map[string]bool{}
	for i, r := range got {
		if seen[r.Name] {
			t.Errorf("duplicate result %s", r.Name)
		}
		seen[r.Name] = true
		if i > 0 && got[i-1].Score < r.Score {
			t.Errorf("results not sorted at %d: %+v", i, got)
		}
	}
	if len(got) < 4 {
		t.Errorf("expected every bank to match, got %+v", got)
	}
}

func TestSearch_TiesKeepDiscoveryOrder(t *testing.T) {
	names := []string{"中国银行股份有限公司", "招商银行股份有限公司", "中国建设银行股份有限公司"}
	m, _ := newMatcher(names...)

	got := m.Search("银行", 10)
	if !reflect.DeepEqual(model.Names(got), names) {
		t.Errorf("Search(银行) order = %v, want %v", model.Names(got), names)
	}
}

func TestSearch_Limit(t *testing.T) {
	m, _ := newMatcher(
		"中国银行股份有限公司",
		"招商银行股份有限公司",
		"中国建设银行股份有限公司",
	)

	if got := m.Search("银行", 2); len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
	if got := m.Search("银行", 0); len(got) != 0 {
		t.Errorf("limit 0 should return nothing, got %+v", got)
	}
}

func TestSearch_FuzzyOnlyBelowLimit(t *testing.T) {
	m, _ := newMatcher("维斯登光电有限公司", "维斯科技有限公司")

	got := m.Search("维斯登光", 5)
	if len(got) == 0 || got[0].Name != "维斯登光电有限公司" || got[0].MatchType != model.MatchExact {
		t.Fatalf("expected exact hit first, got %+v", got)
	}

	var fuzzy *model.MatchResult
	for i := range got {
		if got[i].Name == "维斯科技有限公司" {
			fuzzy = &got[i]
		}
	}
	if fuzzy == nil {
		t.Fatalf("expected fuzzy candidate, got %+v", got)
	}
	// ratio = 2*2/(4+8)
	if fuzzy.MatchType != model.MatchFuzzy || fuzzy.Score != 33 {
		t.Errorf("fuzzy result = %+v, want fuzzy/33", *fuzzy)
	}

	if got := m.Search("维斯登光", 1); len(got) != 1 {
		t.Errorf("limit 1 should stop before fuzzy, got %+v", got)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	m, idx := newMatcher(catalogNames()...)

	first := m.Search("科技", 10)
	second := m.Search("科技", 10)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated search differs:\n%+v\n%+v", first, second)
	}

	idx.Rebuild()
	if after := m.Search("科技", 10); !reflect.DeepEqual(first, after) {
		t.Errorf("search changed after rebuild:\n%+v\n%+v", first, after)
	}
}

func TestSearch_EmptyCatalog(t *testing.T) {
	m, _ := newMatcher()
	if got := m.Search("未知公司", 5); len(got) != 0 {
		t.Errorf("empty catalog should return nothing, got %+v", got)
	}
}

func TestSearch_SeesNewEntries(t *testing.T) {
	m, idx := newMatcher()
	idx.Add(model.NewEntry("未知公司科技有限公司", model.OriginSynthetic))

	got := m.Search("未知公司", 5)
	if len(got) != 1 || got[0].Score != 100 {
		t.Errorf("Search after Add = %+v", got)
	}
}

func TestPrepareQuery(t *testing.T) {
	m, _ := newMatcher()

	q, ok := m.PrepareQuery("  阿里　巴巴 ")
	if !ok || q != "阿里 巴巴" {
		t.Errorf("PrepareQuery = %q, %v", q, ok)
	}

	long := ""
	for i := 0; i < 100; i++ {
		long += "阿"
	}
	q, _ = m.PrepareQuery(long)
	if n := len([]rune(q)); n != 64 {
		t.Errorf("expected truncation to 64 runes, got %d", n)
	}
}

func catalogNames() []string {
	var names []string
	for _, e := range catalog.BuiltinSeed() {
		names = append(names, e.Name)
	}
	return names
}
