package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/model"
)

// Cache stores registry lookup payloads by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// LookupKey derives the cache key for a registry lookup of name from
// source. Full-width and spacing variants of one name share a key.
func LookupKey(source, name string) string {
	name = strings.ToLower(extract.Normalize(name))
	hash := sha256.Sum256([]byte(source + "\x00" + name))
	return "orgresolve:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg. A disabled cache stores nothing;
// a configured directory adds a disk layer behind memory.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return Nop{}
	}
	if cfg.Dir != "" {
		return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
	}
	return NewMemoryCache(cfg.TTL, 10*time.Minute)
}

// Nop is a cache that never hits
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error { return nil }
func (Nop) Clear() error { return nil }
