// Package alias maps Latin and pinyin spellings of organization roots to
// the Chinese fragments they stand for.
package alias

import (
	"sort"
	"strings"

	"github.com/ppiankov/orgresolve/internal/extract"
)

// builtin covers common pinyin and English spellings of well-known roots
var builtin = map[string][]string{
	"alibaba":          {"阿里巴巴"},
	"ali":              {"阿里"},
	"tengxun":          {"腾讯"},
	"tencent":          {"腾讯"},
	"baidu":            {"百度"},
	"zijie":            {"字节"},
	"zijietiaodong":    {"字节跳动"},
	"bytedance":        {"字节跳动"},
	"xiaomi":           {"小米"},
	"huawei":           {"华为"},
	"jingdong":         {"京东"},
	"meituan":          {"美团"},
	"didi":             {"滴滴", "嘀嘀"},
	"gonghang":         {"工行"},
	"icbc":             {"工商银行"},
	"jianhang":         {"建行"},
	"ccb":              {"建设银行"},
	"zhaohang":         {"招行"},
	"cmb":              {"招商银行"},
	"biyadi":           {"比亚迪"},
	"byd":              {"比亚迪"},
	"geli":             {"格力"},
	"gree":             {"格力"},
	"meidi":            {"美的"},
	"midea":            {"美的"},
	"wanke":            {"万科"},
	"vanke":            {"万科"},
	"haier":            {"海尔"},
	"pingan":           {"平安"},
	"hengrui":          {"恒瑞"},
	"dongdian":         {"东电"},
	"dongjingdianzi":   {"东京电子"},
	"tokyoelectron":    {"东京电子"},
	"zhongxin":         {"中芯"},
	"smic":             {"中芯国际"},
	"changxin":         {"长鑫"},
	"cxmt":             {"长鑫存储"},
	"yingyongcailiao":  {"应用材料"},
	"appliedmaterials": {"应用材料"},
	"weisideng":        {"维斯登"},
}

// Table is an immutable alias map. Keys are normalized Latin tokens.
//
// Thread Safety: read-only after construction, safe for concurrent use.
type Table struct {
	entries map[string][]string
	keys    []string // sorted for deterministic lookups
}

// Default returns a table holding only the built-in aliases
func Default() *Table {
	return NewDefaultBuilder().Build()
}

// NewDefaultBuilder returns a builder preloaded with the built-in aliases
func NewDefaultBuilder() *Builder {
	return NewBuilder().AddStatic(builtin)
}

// Lookup returns the fragments of every key equal to or containing the
// normalized query, de-duplicated, in key order.
func (t *Table) Lookup(query string) []string {
	q := extract.NormalizeAlias(query)
	if q == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, k := range t.keys {
		if !strings.Contains(k, q) {
			continue
		}
		for _, f := range t.entries[k] {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// IsKey reports whether query normalizes to an exact alias key
func (t *Table) IsKey(query string) bool {
	_, ok := t.entries[extract.NormalizeAlias(query)]
	return ok
}

// Len returns the number of alias keys
func (t *Table) Len() int {
	return len(t.keys)
}

// Builder accumulates alias keys before the table is frozen
type Builder struct {
	entries map[string][]string
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string][]string)}
}

// Add maps key to fragment. Keys are normalized; empty keys, keys that
// still contain script characters and empty fragments are ignored.
func (b *Builder) Add(key, fragment string) *Builder {
	k := extract.NormalizeAlias(key)
	fragment = strings.TrimSpace(fragment)
	if k == "" || fragment == "" || extract.HasScript(k) {
		return b
	}
	for _, f := range b.entries[k] {
		if f == fragment {
			return b
		}
	}
	b.entries[k] = append(b.entries[k], fragment)
	return b
}

// AddStatic adds every key/fragment pair from m
func (b *Builder) AddStatic(m map[string][]string) *Builder {
	for k, fragments := range m {
		for _, f := range fragments {
			b.Add(k, f)
		}
	}
	return b
}

// Build freezes the builder into a Table
func (b *Builder) Build() *Table {
	t := &Table{entries: make(map[string][]string, len(b.entries))}
	for k, v := range b.entries {
		t.entries[k] = append([]string(nil), v...)
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}
