package catalog

import "strings"

// Snapshot is an immutable view of the catalog at one point in time.
// Names inserted after the last rebuild are listed by Names but are not
// yet reachable through the keyword map.
type Snapshot struct {
	names    []string
	keywords map[string][]string
	keys     []string // keyword keys in first-seen order
	built    int      // number of names covered by keywords
	version  uint64
}

func emptySnapshot() *Snapshot {
	return &Snapshot{keywords: map[string][]string{}}
}

// Names returns a copy of the canonical names in insertion order
func (s *Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of canonical names
func (s *Snapshot) Len() int {
	return len(s.names)
}

// Version increases on every insert and rebuild
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Stale reports whether names were inserted after the last rebuild
func (s *Snapshot) Stale() bool {
	return s.built != len(s.names)
}

// KeyCount returns the number of distinct keyword keys
func (s *Snapshot) KeyCount() int {
	return len(s.keys)
}

// LookupKeyword returns a copy of the names indexed under key
func (s *Snapshot) LookupKeyword(key string) []string {
	postings := s.keywords[key]
	if len(postings) == 0 {
		return nil
	}
	out := make([]string, len(postings))
	copy(out, postings)
	return out
}

// KeysContaining returns, in first-seen order, every key equal to or
// containing query
func (s *Snapshot) KeysContaining(query string) []string {
	var out []string
	for _, k := range s.keys {
		if strings.Contains(k, query) {
			out = append(out, k)
		}
	}
	return out
}

// ForEachName calls fn for each name in insertion order until fn returns false
func (s *Snapshot) ForEachName(fn func(name string) bool) {
	for _, n := range s.names {
		if !fn(n) {
			return
		}
	}
}
