package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ppiankov/orgresolve/internal/cache"
	"github.com/ppiankov/orgresolve/internal/extract"
	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/metrics"
	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/worker"
)

// Client looks organizations up in the configured remote sources, in
// order, and falls back to the built-in registry. Remote failures are
// logged and never returned.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	sources     []Source
	local       *LocalSource
	limiter     *worker.Limiter
	cache       cache.Cache
	timeout     time.Duration
	ttl         time.Duration
	negativeTTL time.Duration
	group       singleflight.Group
	now         func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithSources replaces the remote sources built from configuration
func WithSources(sources ...Source) Option {
	return func(c *Client) {
		c.sources = sources
	}
}

// WithLocal replaces the built-in registry
func WithLocal(local *LocalSource) Option {
	return func(c *Client) {
		c.local = local
	}
}

// WithCache sets the lookup cache
func WithCache(cc cache.Cache) Option {
	return func(c *Client) {
		if cc != nil {
			c.cache = cc
		}
	}
}

// WithLimiter replaces the per-source limiter
func WithLimiter(l *worker.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithClock overrides the time source used for profile enrichment
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient builds a client from configuration. Remote sources are only
// created when the registry is enabled.
func NewClient(cfg model.RegistryConfig, cacheCfg model.CacheConfig, opts ...Option) (*Client, error) {
	c := &Client{
		local:       NewLocalSource(),
		limiter:     worker.NewLimiter(worker.PerMinute(defaultJSONPerMinute), 1),
		cache:       cache.Nop{},
		timeout:     cfg.Timeout,
		ttl:         cacheCfg.TTL,
		negativeTTL: cacheCfg.NegativeTTL,
		now:         time.Now,
	}

	if cfg.Enabled {
		sources, err := buildSources(cfg, c.limiter)
		if err != nil {
			return nil, err
		}
		c.sources = sources
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func buildSources(cfg model.RegistryConfig, limiter *worker.Limiter) ([]Source, error) {
	fetcher := NewFetcher(cfg.Timeout, cfg.UserAgent, maxResponseBytes, cfg.HTTPProxy, cfg.HTTPSProxy)
	var robots *RobotsChecker
	if cfg.RespectRobots {
		robots = NewRobotsChecker(cfg.UserAgent, fetcher.Client())
	}

	sources := make([]Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		if sc.Name == "" || sc.URL == "" {
			return nil, fmt.Errorf("registry source needs a name and a url")
		}
		perMinute := sc.PerMinute
		switch sc.Kind {
		case KindJSON, "":
			if perMinute <= 0 {
				perMinute = defaultJSONPerMinute
			}
			sources = append(sources, NewJSONSource(sc.Name, sc.URL, fetcher))
		case KindPage:
			if perMinute <= 0 {
				perMinute = defaultPagePerMinute
			}
			sources = append(sources, NewPageSource(sc.Name, sc.URL, fetcher, robots, limiter))
		default:
			return nil, fmt.Errorf("unknown registry source kind: %s (supported: json, page)", sc.Kind)
		}
		limiter.SetRate(sc.Name, worker.PerMinute(perMinute), sc.Burst)
	}
	return sources, nil
}

// Sources returns the names of the remote sources followed by the local one
func (c *Client) Sources() []string {
	names := make([]string, 0, len(c.sources)+1)
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return append(names, LocalName)
}

// Lookup returns the registry profile for name. Concurrent lookups of the
// same name share one upstream round. The result carries derived profile
// fields. When no source knows the name the error matches model.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	key := extract.Normalize(name)
	if extract.RuneLen(key) < 2 {
		return model.CatalogEntry{}, model.NewError(model.KindInputTooShort, "registry.lookup", nil)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.lookup(ctx, key)
	})
	if err != nil {
		return model.CatalogEntry{}, err
	}
	entry := v.(model.CatalogEntry)
	entry.Attributes.Enrich(entry.Name, c.now())
	return entry, nil
}

func (c *Client) lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	for _, src := range c.sources {
		entry, err := c.fromSource(ctx, src, name)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			logging.Warn(ctx, "registry source unavailable", "source", src.Name(), "query", name, "error", err)
		}
	}

	entry, err := c.local.Lookup(ctx, name)
	if err != nil {
		metrics.RegistryLookups.WithLabelValues(LocalName, "not_found").Inc()
		return model.CatalogEntry{}, model.NewError(model.KindNotFound, "registry.lookup", fmt.Errorf("%s", name))
	}
	metrics.RegistryLookups.WithLabelValues(LocalName, "found").Inc()
	return entry, nil
}

// cachedLookup is the cache payload; Found=false records a negative answer
type cachedLookup struct {
	Found bool               `json:"found"`
	Entry model.CatalogEntry `json:"entry,omitempty"`
}

func (c *Client) fromSource(ctx context.Context, src Source, name string) (model.CatalogEntry, error) {
	key := cache.LookupKey(src.Name(), name)
	if raw, ok := c.cache.Get(key); ok {
		var hit cachedLookup
		if err := json.Unmarshal(raw, &hit); err == nil {
			metrics.RegistryLookups.WithLabelValues(src.Name(), "cached").Inc()
			if !hit.Found {
				return model.CatalogEntry{}, model.NewError(model.KindNotFound, "registry."+src.Name(), nil)
			}
			return hit.Entry, nil
		}
		_ = c.cache.Delete(key)
	}

	if !c.limiter.Allow(src.Name()) {
		metrics.RegistryLookups.WithLabelValues(src.Name(), "throttled").Inc()
		return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, "registry."+src.Name(), fmt.Errorf("rate limit reached"))
	}

	lookupCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	entry, err := src.Lookup(lookupCtx, name)
	metrics.RegistryLatency.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.RegistryLookups.WithLabelValues(src.Name(), "found").Inc()
		c.store(key, cachedLookup{Found: true, Entry: entry}, c.ttl)
		return entry, nil
	case errors.Is(err, model.ErrNotFound):
		metrics.RegistryLookups.WithLabelValues(src.Name(), "not_found").Inc()
		c.store(key, cachedLookup{Found: false}, c.negativeTTL)
		return model.CatalogEntry{}, err
	default:
		metrics.RegistryLookups.WithLabelValues(src.Name(), "unavailable").Inc()
		if !errors.Is(err, model.ErrExternalUnavailable) {
			err = model.NewError(model.KindExternalUnavailable, "registry."+src.Name(), err)
		}
		return model.CatalogEntry{}, err
	}
}

func (c *Client) store(key string, v cachedLookup, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(key, raw, ttl); err != nil {
		logging.Warn(context.Background(), "registry cache write failed", "error", err)
	}
}
