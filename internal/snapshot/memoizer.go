// Package snapshot provides decorators around the snapshot provider
// port: an in-process TTL memoizer and a redis read-through layer.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/hermine-app/insights/internal/analytics"
	"github.com/hermine-app/insights/internal/domain"
)

// DefaultTTL bounds how stale a memoized snapshot may get.
const DefaultTTL = 60 * time.Second

// Memoizer caches the inner provider's snapshot for a TTL. Concurrent
// callers serialize on the mutex so the upstream sees one fetch per
// expiry. Errors are never cached.
type Memoizer struct {
	inner analytics.SnapshotProvider
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	cached    []domain.Conversation
	valid     bool
	fetchedAt time.Time
}

// NewMemoizer wraps the inner provider. A non-positive ttl falls back to
// DefaultTTL.
func NewMemoizer(inner analytics.SnapshotProvider, ttl time.Duration) *Memoizer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memoizer{inner: inner, ttl: ttl, now: time.Now}
}

// Snapshot returns the memoized conversations, refreshing from the inner
// provider once the TTL elapses.
func (m *Memoizer) Snapshot(ctx context.Context) ([]domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.now().Sub(m.fetchedAt) < m.ttl {
		return m.cached, nil
	}

	conversations, err := m.inner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	m.cached = conversations
	m.valid = true
	m.fetchedAt = m.now()
	return conversations, nil
}
