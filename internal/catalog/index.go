package catalog

import (
	"fmt"
	"sync"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/model"
)

// Index owns the canonical list of organization names and the inverted
// keyword map built from it.
//
// Writers (Insert, InsertBatch, Add, Rebuild) hold the write lock for the
// whole insert-then-rebuild sequence. The keyword map is built into a fresh
// structure and published at the end, so a reader always sees either the
// previous complete map or the new complete map.
//
// Thread Safety: safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	entries   map[string]model.CatalogEntry
	current   *Snapshot
	extractor *extract.KeywordExtractor
	onRebuild func(names, keys int)
}

// Option configures an Index
type Option func(*Index)

// WithExtractor sets the keyword extractor used by Rebuild
func WithExtractor(e *extract.KeywordExtractor) Option {
	return func(idx *Index) {
		if e != nil {
			idx.extractor = e
		}
	}
}

// WithRebuildHook registers fn to run after every rebuild, while the
// write lock is still held. fn must not call back into the index.
func WithRebuildHook(fn func(names, keys int)) Option {
	return func(idx *Index) {
		idx.onRebuild = fn
	}
}

// New creates an empty index
func New(opts ...Option) *Index {
	idx := &Index{
		entries:   make(map[string]model.CatalogEntry),
		current:   emptySnapshot(),
		extractor: extract.NewKeywordExtractor(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Extractor returns the keyword extractor used to build the map
func (idx *Index) Extractor() *extract.KeywordExtractor {
	return idx.extractor
}

// Insert appends entry to the canonical list if its name is not present.
// The keyword map is not updated; call Rebuild afterwards.
func (idx *Index) Insert(entry model.CatalogEntry) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.insertLocked(entry)
}

// InsertBatch inserts entries and rebuilds once, under a single write lock.
// It returns the number of entries actually added.
func (idx *Index) InsertBatch(entries []model.CatalogEntry) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added := 0
	for _, e := range entries {
		if idx.insertLocked(e) {
			added++
		}
	}
	idx.rebuildLocked()
	return added
}

// Add inserts a single entry and rebuilds. Adding an existing name is a no-op
// apart from the rebuild.
func (idx *Index) Add(entry model.CatalogEntry) bool {
	return idx.InsertBatch([]model.CatalogEntry{entry}) == 1
}

// Rebuild re-extracts keywords for every canonical name
func (idx *Index) Rebuild() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.rebuildLocked()
}

func (idx *Index) insertLocked(entry model.CatalogEntry) bool {
	entry.Name = extract.Normalize(entry.Name)
	if entry.Name == "" {
		return false
	}
	if _, exists := idx.entries[entry.Name]; exists {
		return false
	}
	idx.entries[entry.Name] = entry

	// Copy on write: published snapshots keep their own names slice.
	prev := idx.current
	names := make([]string, len(prev.names), len(prev.names)+1)
	copy(names, prev.names)
	names = append(names, entry.Name)

	idx.current = &Snapshot{
		names:    names,
		keywords: prev.keywords,
		keys:     prev.keys,
		built:    prev.built,
		version:  prev.version + 1,
	}
	return true
}

func (idx *Index) rebuildLocked() {
	prev := idx.current
	keywords := make(map[string][]string)
	var keys []string

	for _, name := range prev.names {
		for _, key := range idx.extractor.Extract(name) {
			postings, ok := keywords[key]
			if !ok {
				keys = append(keys, key)
			}
			keywords[key] = append(postings, name)
		}
	}

	idx.current = &Snapshot{
		names:    prev.names,
		keywords: keywords,
		keys:     keys,
		built:    len(prev.names),
		version:  prev.version + 1,
	}

	if idx.onRebuild != nil {
		idx.onRebuild(len(prev.names), len(keys))
	}
}

// Snapshot returns the current immutable view
func (idx *Index) Snapshot() *Snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.current
}

// LookupKeyword returns the names indexed under key, in insertion order
func (idx *Index) LookupKeyword(key string) []string {
	return idx.Snapshot().LookupKeyword(key)
}

// AllNames returns every canonical name in insertion order
func (idx *Index) AllNames() []string {
	return idx.Snapshot().Names()
}

// Len returns the number of canonical entries
func (idx *Index) Len() int {
	return idx.Snapshot().Len()
}

// Get returns the entry stored under name
func (idx *Index) Get(name string) (model.CatalogEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.entries[extract.Normalize(name)]
	return e, ok
}

// Entries returns the entries for names, skipping unknown names
func (idx *Index) Entries(names []string) []model.CatalogEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]model.CatalogEntry, 0, len(names))
	for _, n := range names {
		if e, ok := idx.entries[n]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Verify checks that every posting refers to a live canonical name and that
// every live name covered by the last rebuild appears under at least one key
// whenever it yields keys. A non-nil error wraps model.ErrIndexInconsistent.
func (idx *Index) Verify() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	snap := idx.current
	if snap.built > len(snap.names) {
		return model.NewError(model.KindIndexInconsistent, "catalog.verify",
			fmt.Errorf("map covers %d names but only %d exist", snap.built, len(snap.names)))
	}

	indexed := make(map[string]bool, snap.built)
	for key, postings := range snap.keywords {
		for _, name := range postings {
			if _, ok := idx.entries[name]; !ok {
				return model.NewError(model.KindIndexInconsistent, "catalog.verify",
					fmt.Errorf("key %q refers to unknown name %q", key, name))
			}
			indexed[name] = true
		}
	}

	for _, name := range snap.names[:snap.built] {
		if !indexed[name] && len(idx.extractor.Extract(name)) > 0 {
			return model.NewError(model.KindIndexInconsistent, "catalog.verify",
				fmt.Errorf("name %q has keys but no postings", name))
		}
	}
	return nil
}

// Repair verifies the index and rebuilds it from the canonical list when
// an inconsistency is found. It returns the verification error, if any.
func (idx *Index) Repair() error {
	err := idx.Verify()
	if err != nil {
		idx.Rebuild()
	}
	return err
}
