package synth

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/orgresolve/internal/model"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func newEngine(opts ...Option) *Engine {
	return New(42, append([]Option{WithClock(fixedNow)}, opts...)...)
}

type stubNamer struct {
	enabled bool
	names   []string
	err     error
	calls   int
}

func (s *stubNamer) IsEnabled() bool { return s.enabled }

func (s *stubNamer) SuggestNames(ctx context.Context, query string, count int) ([]string, error) {
	s.calls++
	return s.names, s.err
}

func TestEngine_Generate_Curated(t *testing.T) {
	e := newEngine()

	res := e.Generate(context.Background(), "维斯登")
	if res.Path != PathCurated {
		t.Fatalf("path = %s, want curated", res.Path)
	}
	if len(res.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(res.Entries))
	}
	for _, entry := range res.Entries {
		if !strings.Contains(entry.Name, "维斯登") {
			t.Errorf("curated name %q lacks the root", entry.Name)
		}
		if entry.Origin != model.OriginSynthetic || !entry.IsPlaceholder() {
			t.Errorf("entry %q should be marked synthetic", entry.Name)
		}
	}
}

func TestEngine_Generate_CuratedByAbbreviation(t *testing.T) {
	e := newEngine()

	res := e.Generate(context.Background(), "东电")
	if res.Path != PathCurated {
		t.Fatalf("path = %s, want curated", res.Path)
	}
	if res.Entries[0].Name != "东京电子(上海)有限公司" {
		t.Errorf("first entry = %q", res.Entries[0].Name)
	}
}

func TestEngine_Generate_CoversPartialQuery(t *testing.T) {
	e := newEngine()

	res := e.Generate(context.Background(), "维斯登光电有")
	found := false
	for _, entry := range res.Entries {
		if strings.Contains(entry.Name, "维斯登光电有") {
			found = true
		}
	}
	if !found {
		t.Errorf("no generated name contains the query: %v", names(res.Entries))
	}
}

func TestEngine_Generate_Generic(t *testing.T) {
	e := newEngine()

	res := e.Generate(context.Background(), "未知公司")
	if res.Path != PathGeneric {
		t.Fatalf("path = %s, want generic", res.Path)
	}
	if len(res.Entries) < 1 || len(res.Entries) > 5 {
		t.Fatalf("expected 1-5 entries, got %d", len(res.Entries))
	}
	if res.Entries[0].Name != "未知有限公司" {
		t.Errorf("first entry should complete the query, got %q", res.Entries[0].Name)
	}
	seen := map[string]bool{}
	for _, entry := range res.Entries {
		if seen[entry.Name] {
			t.Errorf("duplicate name %q", entry.Name)
		}
		seen[entry.Name] = true
	}
}

func TestEngine_Generate_NoRepeatedSectorWords(t *testing.T) {
	e := newEngine()

	tests := []struct {
		query string
		stem  string
		bad   []string
	}{
		{"华为技术", "华为", []string{"技术信息技术", "技术技术", "技术科技"}},
		{"某某设备制造", "某某", []string{"设备制造设备", "制造制造", "制造设备"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := e.Generate(context.Background(), tt.query)
			if res.Path != PathGeneric {
				t.Fatalf("path = %s, want generic", res.Path)
			}
			for _, entry := range res.Entries {
				for _, b := range tt.bad {
					if strings.Contains(entry.Name, b) {
						t.Errorf("name %q repeats sector words (%s)", entry.Name, b)
					}
				}
			}
			if !hasName(res.Entries, tt.stem+"科技有限公司") && !hasName(res.Entries, tt.stem+"制造有限公司") {
				t.Errorf("expected a name built on the stem %q, got %v", tt.stem, entryNames(res.Entries))
			}
		})
	}
}

func TestTrimSectors(t *testing.T) {
	tests := map[string]string{
		"华为技术":   "华为",
		"某某设备制造": "某某",
		"华为信息技术": "华为",
		"华光新材料":  "华光新材料",
		"科技":     "科技",
	}
	for in, want := range tests {
		if got := trimSectors(in); got != want {
			t.Errorf("trimSectors(%q) = %q, want %q", in, got, want)
		}
	}
}

func hasName(entries []model.CatalogEntry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

func entryNames(entries []model.CatalogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestEngine_Generate_CompletesLegalForm(t *testing.T) {
	e := newEngine()

	res := e.Generate(context.Background(), "华光精密铸造有限公")
	if res.Entries[0].Name != "华光精密铸造有限公司" {
		t.Errorf("first entry = %q", res.Entries[0].Name)
	}
}

func TestEngine_Generate_EmptyQuery(t *testing.T) {
	e := newEngine()

	for _, q := range []string{"", "   ", "()-"} {
		res := e.Generate(context.Background(), q)
		if res.Path != PathEmpty || len(res.Entries) != 1 {
			t.Fatalf("Generate(%q) = %+v", q, res)
		}
		if res.Entries[0].Attributes.Usable() {
			t.Errorf("placeholder entry should carry no attributes")
		}
	}
}

func TestEngine_Generate_Deterministic(t *testing.T) {
	a := newEngine().Generate(context.Background(), "华光科技")
	b := newEngine().Generate(context.Background(), "华光科技")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed should produce the same entries")
	}
}

func TestEngine_Generate_MaxEntries(t *testing.T) {
	e := newEngine(WithMaxEntries(2))

	res := e.Generate(context.Background(), "维斯登")
	if len(res.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(res.Entries))
	}
}

func TestEngine_Generate_NamerSuggestions(t *testing.T) {
	namer := &stubNamer{enabled: true, names: []string{
		"华光新材料有限公司",
		"华光新材料科技股份有限公司",
		"Unrelated Ltd",
		"另一家有限公司",
		"华光新材料研究院",
	}}
	e := newEngine(WithNamer(namer))

	res := e.Generate(context.Background(), "华光新材料")
	if res.Path != PathLLM {
		t.Fatalf("path = %s, want llm", res.Path)
	}
	want := []string{"华光新材料有限公司", "华光新材料科技股份有限公司"}
	if !reflect.DeepEqual(names(res.Entries), want) {
		t.Errorf("names = %v, want %v", names(res.Entries), want)
	}
}

func TestEngine_Generate_NamerFallback(t *testing.T) {
	for name, namer := range map[string]*stubNamer{
		"error":    {enabled: true, err: errors.New("rate limited")},
		"invalid":  {enabled: true, names: []string{"nothing useful"}},
		"disabled": {enabled: false},
	} {
		t.Run(name, func(t *testing.T) {
			res := newEngine(WithNamer(namer)).Generate(context.Background(), "华光新材料")
			if res.Path != PathGeneric {
				t.Errorf("path = %s, want generic", res.Path)
			}
			if len(res.Entries) == 0 {
				t.Error("fallback must still produce entries")
			}
		})
	}
}

func TestEngine_Generate_CuratedSkipsNamer(t *testing.T) {
	namer := &stubNamer{enabled: true, names: []string{"维斯登X有限公司"}}
	newEngine(WithNamer(namer)).Generate(context.Background(), "维斯登")
	if namer.calls != 0 {
		t.Errorf("namer should not be asked for curated roots")
	}
}

var (
	creditCodeRe = regexp.MustCompile(`^91\d{6}[A-HJ-NP-Z0-9]{10}$`)
	dateRe       = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|1\d|2[0-8])$`)
	capitalRe    = regexp.MustCompile(`^\d+万人民币$`)
)

func TestEngine_Attributes(t *testing.T) {
	e := newEngine()

	for _, q := range []string{"华光科技", "华光精密制造", "华光贸易", "华光投资控股", "华光"} {
		for _, entry := range e.Generate(context.Background(), q).Entries {
			a := entry.Attributes
			if !a.Usable() {
				t.Errorf("%s: attributes not usable", entry.Name)
			}
			if !creditCodeRe.MatchString(a.CreditCode) {
				t.Errorf("%s: credit code %q", entry.Name, a.CreditCode)
			}
			if !dateRe.MatchString(a.EstablishmentDate) {
				t.Errorf("%s: date %q", entry.Name, a.EstablishmentDate)
			}
			if !capitalRe.MatchString(a.RegisteredCapital) {
				t.Errorf("%s: capital %q", entry.Name, a.RegisteredCapital)
			}
			if a.BusinessStatus != "存续" {
				t.Errorf("%s: status %q", entry.Name, a.BusinessStatus)
			}
			if !strings.HasSuffix(a.BusinessScope, "进出口贸易；企业管理咨询...") {
				t.Errorf("%s: scope %q", entry.Name, a.BusinessScope)
			}
			if !strings.HasSuffix(a.Address, "号") {
				t.Errorf("%s: address %q", entry.Name, a.Address)
			}
			if a.YearsEstablished <= 0 || a.EnterpriseNature == "" {
				t.Errorf("%s: derived fields not filled: %+v", entry.Name, a)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	if got := classifyBusiness("华光软件"); got != typeTechnology {
		t.Errorf("classifyBusiness = %s", got)
	}
	if got := classifyBusiness("华光进出口"); got != typeTrading {
		t.Errorf("classifyBusiness = %s", got)
	}
	if got := classifyScale("华光集团有限公司"); got != scaleLarge {
		t.Errorf("classifyScale = %s", got)
	}
	if got := classifyScale("华光有限公司"); got != scaleMedium {
		t.Errorf("classifyScale = %s", got)
	}
	if got := classifyScale("华光"); got != scaleSmall {
		t.Errorf("classifyScale = %s", got)
	}
	if got := industryFor("华光光电"); got != "光电设备制造" {
		t.Errorf("industryFor = %s", got)
	}
	if got := industryFor("华光"); got != defaultIndustry {
		t.Errorf("industryFor = %s", got)
	}
}

func TestEngine_RegionFromName(t *testing.T) {
	e := newEngine()
	res := e.Generate(context.Background(), "华光(苏州)精密制造有限公司")
	a := res.Entries[0].Attributes
	if !strings.HasPrefix(a.CreditCode, "91320500") || !strings.HasPrefix(a.Address, "江苏省苏州市") {
		t.Errorf("region not honored: %+v", a)
	}
}

func names(entries []model.CatalogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
