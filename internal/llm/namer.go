package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ppiankov/orgresolve/internal/logging"
)

const (
	availabilityTimeout = 3 * time.Second
	availabilityRecheck = 5 * time.Minute
)

// Namer adapts an optional Provider to the synthesis engine. A Namer with
// no provider is disabled and never called. Provider health is checked
// before the first suggestion and again after availabilityRecheck.
type Namer struct {
	provider Provider

	mu        sync.Mutex
	checkedAt time.Time
	available bool
	now       func() time.Time
}

// NewNamer creates a namer from configuration. An empty provider name
// yields a disabled namer and no error.
func NewNamer(config Config) (*Namer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return NewNamerWithProvider(provider), nil
}

// NewNamerWithProvider wraps an existing provider
func NewNamerWithProvider(p Provider) *Namer {
	return &Namer{provider: p, now: time.Now}
}

// IsEnabled reports whether a provider is configured
func (n *Namer) IsEnabled() bool {
	return n != nil && n.provider != nil
}

// Available reports whether the provider answers its health check. The
// answer is cached so a down provider costs one short check per recheck
// window rather than a full timeout per query.
func (n *Namer) Available(ctx context.Context) bool {
	if !n.IsEnabled() {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.checkedAt.IsZero() && n.now().Sub(n.checkedAt) < availabilityRecheck {
		return n.available
	}

	checkCtx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()
	n.available = n.provider.IsAvailable(checkCtx)
	n.checkedAt = n.now()
	if !n.available {
		logging.Warn(ctx, "LLM provider unavailable, using template synthesis", "provider", n.provider.Name())
	}
	return n.available
}

// SuggestNames returns up to count name variants for query
func (n *Namer) SuggestNames(ctx context.Context, query string, count int) ([]string, error) {
	if !n.IsEnabled() {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if !n.Available(ctx) {
		return nil, fmt.Errorf("%s: provider unavailable", n.provider.Name())
	}
	resp, err := n.provider.SuggestNames(ctx, SuggestRequest{Query: query, Count: count})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.provider.Name(), err)
	}
	return resp.Names, nil
}
