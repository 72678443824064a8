// Package exchange supplies exchange-rate snapshots to the rest of the
// application. Rates are fetched from an external API at most once per
// TTL window and cached; when the fetch fails or no API is configured
// the provider degrades to the last cached table and finally to a
// static built-in one, so a transaction or settlement can always
// complete with best-available rates.
package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/adhamoui/splitpal/internal/currency"
)

// DefaultTTL is how long a fetched rate table stays fresh
const DefaultTTL = 24 * time.Hour

// Snapshot is a rate table relative to the base currency, plus the time
// the rates were obtained.
type Snapshot struct {
	Base      currency.Code  `json:"base"`
	Rates     currency.Rates `json:"rates"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Fetcher fetches a fresh rate table from an external source
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Cache stores the most recently obtained snapshot
type Cache interface {
	Get(ctx context.Context) (Snapshot, bool)
	Set(ctx context.Context, snap Snapshot)
}

// Provider hands out the best-available rate snapshot. It performs no
// retries: one failed fetch falls back to the cached value and then to
// the static table, and that result serves the whole operation.
type Provider struct {
	fetcher Fetcher // nil when no rate API is configured
	cache   Cache
	ttl     time.Duration
}

// NewProvider creates a provider. fetcher may be nil, in which case
// only cached and static rates are served. A non-positive ttl uses
// DefaultTTL.
func NewProvider(fetcher Fetcher, cache Cache, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{fetcher: fetcher, cache: cache, ttl: ttl}
}

// Snapshot returns the current rate table. The lookup order is: cached
// snapshot still inside the TTL, a single live fetch, the stale cached
// snapshot, the static fallback table. It never fails.
func (p *Provider) Snapshot(ctx context.Context) Snapshot {
	cached, haveCached := p.cache.Get(ctx)
	if haveCached && time.Since(cached.FetchedAt) < p.ttl {
		return cached
	}

	if p.fetcher != nil {
		fresh, err := p.fetcher.Fetch(ctx)
		if err == nil {
			p.cache.Set(ctx, fresh)
			return fresh
		}
		slog.Warn("exchange rate fetch failed", "error", err)
	}

	if haveCached {
		slog.Info("serving stale exchange rates", "fetched_at", cached.FetchedAt)
		return cached
	}

	return FallbackSnapshot()
}
