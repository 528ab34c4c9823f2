package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hermine-app/insights/internal/analytics"
	"github.com/hermine-app/insights/internal/domain"
)

// cacheKey is the single entry holding the serialized snapshot.
const cacheKey = "insights:snapshot"

// Cache is an opportunistic byte store. Get reports a miss instead of an
// error; Set failures are the adapter's problem, not the caller's.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// CachedProvider reads the snapshot through a byte cache. Any cache
// failure or decode error falls through to the inner provider.
type CachedProvider struct {
	inner  analytics.SnapshotProvider
	cache  Cache
	ttl    time.Duration
	logger analytics.Logger
}

// NewCachedProvider wraps the inner provider with a read-through cache.
func NewCachedProvider(inner analytics.SnapshotProvider, cache Cache, ttl time.Duration, logger analytics.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// Snapshot returns the cached conversations when present and decodable,
// otherwise fetches from the inner provider and repopulates the cache.
func (p *CachedProvider) Snapshot(ctx context.Context) ([]domain.Conversation, error) {
	if raw, ok := p.cache.Get(ctx, cacheKey); ok {
		var conversations []domain.Conversation
		if err := json.Unmarshal(raw, &conversations); err == nil {
			p.logger.Debug("snapshot served from cache")
			return conversations, nil
		}
		p.logger.Debug("discarding undecodable cached snapshot")
	}

	conversations, err := p.inner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(conversations); err == nil {
		p.cache.Set(ctx, cacheKey, raw, p.ttl)
	}
	return conversations, nil
}
