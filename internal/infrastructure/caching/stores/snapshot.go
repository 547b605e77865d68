// Package stores provides concrete cache store implementations.
package stores

import (
	"context"
	"sync"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/types"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
)

// snapshotFetch is one in-flight source query shared by every caller
// that misses while it runs.
type snapshotFetch struct {
	done     chan struct{}
	snapshot *analytics.RawSnapshot
}

// SnapshotStore is the single-slot, TTL-bounded cache in front of the
// event source. It is the sole point of contact with the source for
// all derived views; concurrent cache-misses collapse into one
// outstanding query. A failed fetch yields an empty degraded snapshot
// that is served but never cached, so the next caller retries.
type SnapshotStore struct {
	source  analytics.EventStore
	logger  *logging.ChanneledLogger
	ttl     time.Duration
	timeout time.Duration

	mu       sync.Mutex
	current  *types.CachedSnapshot
	inflight *snapshotFetch
}

// NewSnapshotStore creates a snapshot cache over the given event source.
func NewSnapshotStore(source analytics.EventStore, logger *logging.ChanneledLogger, ttl, timeout time.Duration) *SnapshotStore {
	return &SnapshotStore{
		source:  source,
		logger:  logger,
		ttl:     ttl,
		timeout: timeout,
	}
}

// Fetch returns the cached snapshot when fresh, otherwise queries the
// source once and caches the result. The filter passes through to the
// source on refresh; facade callers always fetch unfiltered, which is
// what makes the single slot sound.
func (s *SnapshotStore) Fetch(ctx context.Context, filter *analytics.EventFilter) *analytics.RawSnapshot {
	start := time.Now()

	s.mu.Lock()
	if s.current != nil && !s.current.Expired(start.UTC()) {
		snapshot := s.current.Data
		s.mu.Unlock()
		s.logger.LogCacheOperation("snapshot_fetch", "raw-snapshot", true, time.Since(start))
		return snapshot
	}

	if s.inflight != nil {
		fetch := s.inflight
		s.mu.Unlock()
		select {
		case <-fetch.done:
			return fetch.snapshot
		case <-ctx.Done():
			s.logger.Cache().Warn("Caller abandoned shared snapshot fetch", "error", ctx.Err().Error())
			return s.emptySnapshot()
		}
	}

	fetch := &snapshotFetch{done: make(chan struct{})}
	s.inflight = fetch
	s.mu.Unlock()

	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	evts, err := s.source.QueryAll(queryCtx, filter)
	fetchedAt := time.Now().UTC()

	if err != nil {
		// Availability over correctness: serve empty, do not cache,
		// so the next call retries against the source.
		s.logger.Cache().Error("Event source fetch failed, serving empty snapshot", "error", err.Error(), "duration", time.Since(start))
		fetch.snapshot = &analytics.RawSnapshot{Events: []events.Event{}, FetchedAt: fetchedAt, Degraded: true}

		s.mu.Lock()
		s.inflight = nil
		s.mu.Unlock()
		close(fetch.done)
		return fetch.snapshot
	}

	fetch.snapshot = &analytics.RawSnapshot{Events: evts, FetchedAt: fetchedAt}

	s.mu.Lock()
	s.current = &types.CachedSnapshot{Data: fetch.snapshot, ComputedAt: fetchedAt, TTL: s.ttl}
	s.inflight = nil
	s.mu.Unlock()
	close(fetch.done)

	s.logger.LogCacheOperation("snapshot_fetch", "raw-snapshot", false, time.Since(start))
	return fetch.snapshot
}

// Clear drops the cached snapshot. An in-flight fetch is unaffected;
// its waiters still share its result.
func (s *SnapshotStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *SnapshotStore) emptySnapshot() *analytics.RawSnapshot {
	return &analytics.RawSnapshot{Events: []events.Event{}, FetchedAt: time.Now().UTC(), Degraded: true}
}
