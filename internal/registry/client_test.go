package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/orgresolve/internal/cache"
	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/worker"
)

// stubSource is a Source with a scripted answer
type stubSource struct {
	name  string
	entry model.CatalogEntry
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Lookup(ctx context.Context, name string) (model.CatalogEntry, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return model.CatalogEntry{}, model.NewError(model.KindExternalUnavailable, "stub", ctx.Err())
		}
	}
	return s.entry, s.err
}

func fixedClock() time.Time {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithLimiter(worker.NewLimiter(1000, 1000)),
		WithClock(fixedClock),
	}
	c, err := NewClient(model.RegistryConfig{Timeout: time.Second}, model.CacheConfig{TTL: time.Hour, NegativeTTL: time.Minute}, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestClient_RemoteHitIsEnriched(t *testing.T) {
	remote := &stubSource{name: "api", entry: model.CatalogEntry{
		Name:       "维斯登光电有限公司",
		Origin:     model.OriginRegistry,
		Attributes: model.Attributes{EstablishmentDate: "2015-06-01"},
	}}
	c := newTestClient(t, WithSources(remote))

	entry, err := c.Lookup(context.Background(), "维斯登光电")
	require.NoError(t, err)
	assert.Equal(t, "维斯登光电有限公司", entry.Name)
	assert.Equal(t, "民营企业", entry.Attributes.EnterpriseNature)
	assert.Equal(t, 11, entry.Attributes.YearsEstablished)
}

func TestClient_FallsBackToLocal(t *testing.T) {
	down := &stubSource{name: "api", err: model.NewError(model.KindExternalUnavailable, "stub", errors.New("connection refused"))}
	missing := &stubSource{name: "page", err: model.NewError(model.KindNotFound, "stub", nil)}
	c := newTestClient(t, WithSources(down, missing))

	entry, err := c.Lookup(context.Background(), "腾讯控股")
	require.NoError(t, err)
	assert.Equal(t, "腾讯控股有限公司", entry.Name)
	assert.Equal(t, int32(1), down.calls.Load())
	assert.Equal(t, int32(1), missing.calls.Load())
	assert.Equal(t, []string{"api", "page", LocalName}, c.Sources())
}

func TestClient_NotFoundEverywhere(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Lookup(context.Background(), "维斯登光电")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = c.Lookup(context.Background(), "维")
	assert.ErrorIs(t, err, model.ErrInputTooShort)
}

func TestClient_TimeoutDegrades(t *testing.T) {
	slow := &stubSource{name: "slow", delay: time.Second, entry: model.CatalogEntry{Name: "never"}}
	c, err := NewClient(model.RegistryConfig{Timeout: 20 * time.Millisecond}, model.CacheConfig{},
		WithSources(slow), WithLimiter(worker.NewLimiter(1000, 1000)))
	require.NoError(t, err)

	start := time.Now()
	entry, err := c.Lookup(context.Background(), "华为技术")
	require.NoError(t, err)
	assert.Equal(t, "华为技术有限公司", entry.Name)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestClient_RateLimitedSourceIsSkipped(t *testing.T) {
	remote := &stubSource{name: "api", entry: model.CatalogEntry{Name: "远程公司有限公司"}}
	limiter := worker.NewLimiter(1000, 1000)
	limiter.SetRate("api", worker.PerMinute(1), 1)
	c := newTestClient(t, WithSources(remote), WithLimiter(limiter))

	first, err := c.Lookup(context.Background(), "远程公司")
	require.NoError(t, err)
	assert.Equal(t, "远程公司有限公司", first.Name)

	_, err = c.Lookup(context.Background(), "另一家公司")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestClient_CachesPositiveAndNegative(t *testing.T) {
	hit := &stubSource{name: "api", entry: model.CatalogEntry{Name: "维斯登光电有限公司"}}
	c := newTestClient(t, WithSources(hit), WithCache(cache.NewMemoryCache(time.Hour, time.Minute)))

	for i := 0; i < 3; i++ {
		_, err := c.Lookup(context.Background(), "维斯登光电")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hit.calls.Load())

	miss := &stubSource{name: "api2", err: model.NewError(model.KindNotFound, "stub", nil)}
	c = newTestClient(t, WithSources(miss), WithCache(cache.NewMemoryCache(time.Hour, time.Minute)))
	for i := 0; i < 2; i++ {
		_, _ = c.Lookup(context.Background(), "无此公司")
	}
	assert.Equal(t, int32(1), miss.calls.Load())
}

func TestClient_UnavailableIsNotCached(t *testing.T) {
	down := &stubSource{name: "api", err: errors.New("boom")}
	c := newTestClient(t, WithSources(down), WithCache(cache.NewMemoryCache(time.Hour, time.Minute)))

	for i := 0; i < 2; i++ {
		_, _ = c.Lookup(context.Background(), "无此公司")
	}
	assert.Equal(t, int32(2), down.calls.Load())
}

func TestClient_ConcurrentLookupsShareOneRound(t *testing.T) {
	remote := &stubSource{name: "api", delay: 50 * time.Millisecond, entry: model.CatalogEntry{Name: "长鑫存储技术有限公司"}}
	c := newTestClient(t, WithSources(remote))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := c.Lookup(context.Background(), "长鑫存储")
			assert.NoError(t, err)
			assert.Equal(t, "长鑫存储技术有限公司", entry.Name)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, remote.calls.Load(), int32(2))
}

func TestNewClient_BuildsConfiguredSources(t *testing.T) {
	cfg := model.RegistryConfig{
		Enabled: true,
		Timeout: time.Second,
		Sources: []model.SourceConfig{
			{Name: "api", Kind: KindJSON, URL: "http://127.0.0.1:1/api"},
			{Name: "page", Kind: KindPage, URL: "http://127.0.0.1:1/detail"},
		},
	}
	c, err := NewClient(cfg, model.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "page", LocalName}, c.Sources())

	cfg.Sources = append(cfg.Sources, model.SourceConfig{Name: "x", Kind: "ftp", URL: "ftp://x"})
	_, err = NewClient(cfg, model.CacheConfig{})
	assert.Error(t, err)

	disabled, err := NewClient(model.RegistryConfig{Sources: cfg.Sources}, model.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{LocalName}, disabled.Sources())
}
