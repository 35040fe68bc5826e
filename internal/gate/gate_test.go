package gate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/orgresolve/internal/model"
)

func newGate() *SpecificityGate {
	return New(model.DefaultConfig().Gate)
}

func result(name string, t model.MatchType, score int) model.MatchResult {
	return model.MatchResult{Name: name, MatchType: t, Score: score}
}

func TestShouldSupplement_EmptyResults(t *testing.T) {
	g := newGate()
	for _, q := range []string{"未知公司", "ab", "阿里"} {
		if !g.ShouldSupplement(q, nil) {
			t.Errorf("ShouldSupplement(%q, []) = false, want true", q)
		}
	}
}

func TestShouldSupplement_AdequateAnswer(t *testing.T) {
	g := newGate()
	results := []model.MatchResult{result("阿里巴巴(中国)有限公司", model.MatchExact, 100)}

	d := g.Evaluate("阿里巴巴", results)
	if d.Supplement {
		t.Errorf("exact match should be adequate, got signals %v", d.Types())
	}
	if d.Signals == nil {
		t.Error("signals should be an empty slice, not nil")
	}
}

func TestEvaluate_SignalOrder(t *testing.T) {
	g := newGate()

	d := g.Evaluate("维斯登光电有", nil)
	want := []model.SignalType{model.SignalNoResults, model.SignalLongUnmatched, model.SignalSuffixWeak}
	if !reflect.DeepEqual(d.Types(), want) {
		t.Errorf("Types() = %v, want %v", d.Types(), want)
	}
}

func TestEvaluate_TruncatesLikeSearch(t *testing.T) {
	stem := strings.Repeat("华光精密", 16) // 64 runes
	query := stem + "铸造设备"
	results := []model.MatchResult{result(stem+"有限公司", model.MatchFuzzy, 60)}

	untruncated := newGate().Evaluate(query, results)
	if !hasSignal(untruncated, model.SignalLongUnmatched) {
		t.Fatalf("full-length query should be unmatched, got %v", untruncated.Types())
	}

	g := New(model.DefaultConfig().Gate, WithMaxQueryRunes(64))
	if d := g.Evaluate(query, results); hasSignal(d, model.SignalLongUnmatched) {
		t.Errorf("cut query is contained in the result, got %v", d.Types())
	}
}

func hasSignal(d model.Decision, want model.SignalType) bool {
	for _, t := range d.Types() {
		if t == want {
			return true
		}
	}
	return false
}

func TestWeakFew(t *testing.T) {
	weak := []model.MatchResult{result("维斯科技有限公司", model.MatchFuzzy, 40)}
	if fired, sig := WeakFew(weak, 2, 50); !fired || sig.Data["best_score"] != 40 {
		t.Errorf("one weak result should fire, got %v %+v", fired, sig)
	}

	three := []model.MatchResult{
		result("a", model.MatchFuzzy, 40),
		result("b", model.MatchFuzzy, 40),
		result("c", model.MatchFuzzy, 40),
	}
	if fired, _ := WeakFew(three, 2, 50); fired {
		t.Error("three results exceed the few-results bound")
	}

	strong := []model.MatchResult{result("a", model.MatchKeyword, 50)}
	if fired, _ := WeakFew(strong, 2, 50); fired {
		t.Error("a score at the threshold is not weak")
	}
}

func TestLongUnmatched(t *testing.T) {
	near := []model.MatchResult{result("维斯登科技有限公司", model.MatchFuzzy, 40)}

	if fired, _ := LongUnmatched("维斯登光电有", near, 4, 85); !fired {
		t.Error("long query with only a fuzzy near-miss should fire")
	}
	if fired, _ := LongUnmatched("维斯登", near, 4, 85); fired {
		t.Error("short query should not fire")
	}

	strong := []model.MatchResult{result("维斯登科技有限公司", model.MatchKeyword, 85)}
	if fired, _ := LongUnmatched("维斯登光电有", strong, 4, 85); fired {
		t.Error("a strong result suppresses the rule")
	}

	contained := []model.MatchResult{result("维斯登光电有限公司", model.MatchKeyword, 60)}
	if fired, _ := LongUnmatched("维斯登光电有", contained, 4, 85); fired {
		t.Error("a result containing the query suppresses the rule")
	}
}

func TestSuffixWeak(t *testing.T) {
	results := []model.MatchResult{result("某某贸易有限公司", model.MatchFuzzy, 70)}

	fired, sig := SuffixWeak("某某科技", results, 80)
	if !fired || sig.Data["token"] != "科技" {
		t.Errorf("sector token without a close result should fire, got %v %+v", fired, sig)
	}

	nearby := []model.MatchResult{result("某某科技有限公司", model.MatchExact, 100)}
	if fired, _ := SuffixWeak("某某科技", nearby, 80); fired {
		t.Error("a close result suppresses the rule")
	}
	if fired, _ := SuffixWeak("某某某某", results, 80); fired {
		t.Error("query without a suffix token should not fire")
	}
}

func TestLessSpecific_MainWords(t *testing.T) {
	results := []model.MatchResult{result("维斯登有限公司", model.MatchKeyword, 90)}

	fired, sig := LessSpecific("维斯登光电技术有限公司", results, 1)
	if !fired {
		t.Fatal("query extending the best name should fire")
	}
	if sig.Data["stripped"] != "维斯登光电技术" || sig.Data["best_stripped"] != "维斯登" {
		t.Errorf("unexpected signal data: %+v", sig.Data)
	}
}

func TestLessSpecific_EqualLengthIsNotMoreSpecific(t *testing.T) {
	results := []model.MatchResult{result("维斯登光电有限公司", model.MatchExact, 100)}
	if fired, _ := LessSpecific("维斯登光电有限公司", results, 1); fired {
		t.Error("identical stripped names must not fire")
	}
}

func TestLessSpecific_OneExtraRuneIsNotEnough(t *testing.T) {
	results := []model.MatchResult{result("维斯登光有限公司", model.MatchKeyword, 90)}
	if fired, _ := LessSpecific("维斯登光电", results, 1); fired {
		t.Error("a single extra rune is within the margin")
	}
}

func TestLessSpecific_TechnicalKeyword(t *testing.T) {
	results := []model.MatchResult{result("东京电子(上海)有限公司", model.MatchKeyword, 100)}

	fired, sig := LessSpecific("东电光电设备", results, 1)
	if !fired {
		t.Fatal("technical keyword absent from the primary segment should fire")
	}
	if sig.Data["primary"] != "东京电子" || sig.Data["keyword"] != "光电" {
		t.Errorf("unexpected signal data: %+v", sig.Data)
	}
}

func TestRegionUncovered(t *testing.T) {
	results := []model.MatchResult{result("阿里巴巴(中国)有限公司", model.MatchExact, 100)}

	fired, sig := RegionUncovered("阿里巴巴上海", results)
	if !fired || sig.Data["region"] != "上海" {
		t.Errorf("uncovered region should fire, got %v %+v", fired, sig)
	}

	covered := []model.MatchResult{result("东京电子(上海)有限公司", model.MatchExact, 100)}
	if fired, _ := RegionUncovered("东京电子上海", covered); fired {
		t.Error("region present in a result should not fire")
	}
}

func TestBest(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Error("Best of nothing should report false")
	}
	results := []model.MatchResult{
		result("a", model.MatchKeyword, 60),
		result("b", model.MatchExact, 100),
		result("c", model.MatchExact, 100),
	}
	if b, _ := Best(results); b.Name != "b" {
		t.Errorf("Best should pick the first top score, got %s", b.Name)
	}
}

func TestMainWords(t *testing.T) {
	got := MainWords("TCL科技A阿")
	if !reflect.DeepEqual(got, []string{"科技"}) {
		t.Errorf("MainWords = %v", got)
	}
}
