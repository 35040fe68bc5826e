package catalog

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/ppiankov/orgresolve/internal/model"
)

func entry(name string) model.CatalogEntry {
	return model.NewEntry(name, model.OriginManual)
}

func TestIndex_InsertIdempotent(t *testing.T) {
	idx := New()

	if !idx.Insert(entry("华为技术有限公司")) {
		t.Fatal("first insert should add the entry")
	}
	if idx.Insert(entry("华为技术有限公司")) {
		t.Error("second insert of the same name should be a no-op")
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", idx.Len())
	}
}

func TestIndex_InsertDoesNotIndex(t *testing.T) {
	idx := New()
	idx.Insert(entry("华为技术有限公司"))

	if got := idx.LookupKeyword("华为"); got != nil {
		t.Errorf("keyword map should not change before rebuild, got %v", got)
	}
	if !idx.Snapshot().Stale() {
		t.Error("snapshot should be stale after insert without rebuild")
	}

	idx.Rebuild()
	if got := idx.LookupKeyword("华为"); !reflect.DeepEqual(got, []string{"华为技术有限公司"}) {
		t.Errorf("LookupKeyword after rebuild = %v", got)
	}
}

func TestIndex_PostingsKeepInsertionOrder(t *testing.T) {
	idx := New()
	idx.InsertBatch([]model.CatalogEntry{
		entry("中国银行股份有限公司"),
		entry("中国建设银行股份有限公司"),
		entry("招商银行股份有限公司"),
	})

	got := idx.LookupKeyword("银行")
	want := []string{"中国银行股份有限公司", "中国建设银行股份有限公司", "招商银行股份有限公司"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LookupKeyword(银行) = %v, want %v", got, want)
	}
}

func TestIndex_AddTwiceNoDuplicatePostings(t *testing.T) {
	idx := New()
	idx.Add(entry("东京电子(上海)有限公司"))
	idx.Add(entry("东京电子(上海)有限公司"))

	if idx.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", idx.Len())
	}
	if got := idx.LookupKeyword("东电"); len(got) != 1 {
		t.Errorf("expected one posting for 东电, got %v", got)
	}
}

func TestIndex_NormalizesNames(t *testing.T) {
	idx := New()
	idx.Add(entry("沃尔玛（中国）投资有限公司"))

	if _, ok := idx.Get("沃尔玛(中国)投资有限公司"); !ok {
		t.Error("full-width parentheses should be folded on insert")
	}
	if idx.Add(entry("  ")) {
		t.Error("blank names must be rejected")
	}
}

func TestIndex_RebuildIsDeterministic(t *testing.T) {
	idx := New()
	idx.InsertBatch(BuiltinSeed())
	before := idx.Snapshot()

	idx.Rebuild()
	after := idx.Snapshot()

	if !reflect.DeepEqual(before.keys, after.keys) {
		t.Error("key order changed across rebuilds")
	}
	if !reflect.DeepEqual(before.keywords, after.keywords) {
		t.Error("postings changed across rebuilds")
	}
	if after.Version() <= before.Version() {
		t.Error("version should increase on rebuild")
	}
}

func TestIndex_SnapshotIsolation(t *testing.T) {
	idx := New()
	idx.Add(entry("华为技术有限公司"))
	snap := idx.Snapshot()

	idx.Add(entry("华为投资控股有限公司"))

	if snap.Len() != 1 {
		t.Errorf("old snapshot should keep 1 name, got %d", snap.Len())
	}
	if got := snap.LookupKeyword("华为"); len(got) != 1 {
		t.Errorf("old snapshot postings changed: %v", got)
	}
	if idx.Len() != 2 {
		t.Errorf("index should have 2 names, got %d", idx.Len())
	}
}

func TestIndex_KeysContaining(t *testing.T) {
	idx := New()
	idx.Add(entry("东京电子(上海)有限公司"))

	keys := idx.Snapshot().KeysContaining("电子")
	if len(keys) == 0 || keys[0] != "东京电子" {
		t.Errorf("expected 东京电子 first, got %v", keys)
	}
}

func TestIndex_Verify(t *testing.T) {
	idx := New()
	idx.InsertBatch(BuiltinSeed())

	if err := idx.Verify(); err != nil {
		t.Fatalf("fresh index should verify: %v", err)
	}

	// Corrupt a posting directly.
	idx.mu.Lock()
	idx.current.keywords["华为"] = append(idx.current.keywords["华为"], "不存在的公司")
	idx.mu.Unlock()

	err := idx.Repair()
	if !errors.Is(err, model.ErrIndexInconsistent) {
		t.Fatalf("expected inconsistency, got %v", err)
	}
	if err := idx.Verify(); err != nil {
		t.Errorf("repair should rebuild a consistent index: %v", err)
	}
}

func TestIndex_RebuildHook(t *testing.T) {
	var names, keys int
	idx := New(WithRebuildHook(func(n, k int) { names, keys = n, k }))
	idx.Add(entry("华为技术有限公司"))

	if names != 1 || keys == 0 {
		t.Errorf("hook got names=%d keys=%d", names, keys)
	}
}

func TestIndex_ConcurrentAddAndRead(t *testing.T) {
	idx := New()
	idx.InsertBatch(BuiltinSeed())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			idx.Add(entry("并发测试" + string(rune('甲'+i)) + "有限公司"))
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap := idx.Snapshot()
				for _, k := range snap.KeysContaining("银行") {
					if len(snap.LookupKeyword(k)) == 0 {
						t.Errorf("key %q has no postings", k)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	if err := idx.Verify(); err != nil {
		t.Errorf("index inconsistent after concurrent writes: %v", err)
	}
}

func TestIndex_Popular(t *testing.T) {
	idx := New()
	idx.InsertBatch(BuiltinSeed())

	if got := idx.Popular(0); len(got) != 20 {
		t.Errorf("expected 20 popular names, got %d", len(got))
	}
	if got := idx.Popular(3); len(got) != 3 || got[0] != "阿里巴巴(中国)有限公司" {
		t.Errorf("Popular(3) = %v", got)
	}

	empty := New()
	if got := empty.Popular(5); len(got) != 0 {
		t.Errorf("popular names must exist in the catalog, got %v", got)
	}
}
