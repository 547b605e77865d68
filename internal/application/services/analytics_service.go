// Package services contains the stateless application services wired
// by the container.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/showcaseworks/showcase-go/internal/application/compute"
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/manager"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/stores"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/messaging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

// AnalyticsService is the aggregation facade: cache-check, snapshot
// refresh when stale, compute, cache-store, return.
type AnalyticsService struct {
	cacheManager *manager.Manager
	contentStore analytics.ContentStore
	broadcaster  *messaging.Broadcaster
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewAnalyticsService creates the aggregation facade.
func NewAnalyticsService(cacheManager *manager.Manager, contentStore analytics.ContentStore, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AnalyticsService {
	return &AnalyticsService{
		cacheManager: cacheManager,
		contentStore: contentStore,
		broadcaster:  broadcaster,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// Get returns the named derived view, serving it from the view cache
// within the TTL window and recomputing it from the current raw
// snapshot otherwise.
func (s *AnalyticsService) Get(ctx context.Context, viewName string, params analytics.Params) (any, error) {
	start := time.Now()
	key := stores.ViewKey(viewName, params)

	if view, hit := s.cacheManager.Views().Get(key); hit {
		s.logger.LogCacheOperation("view_get", key, true, time.Since(start))
		return view, nil
	}

	view, degraded, err := s.computeView(ctx, viewName, params)
	if err != nil {
		return nil, err
	}

	// A view built from a failed source is served but never cached, so
	// the next call retries the source instead of waiting out the TTL.
	if degraded {
		s.logger.LogCacheOperation("view_get_degraded", key, false, time.Since(start))
		return view, nil
	}

	s.cacheManager.Views().Set(key, view)
	s.logger.LogCacheOperation("view_get", key, false, time.Since(start))
	return view, nil
}

// RefreshAll clears both caches and recomputes every view with
// default params, bypassing normal TTL. Used by the explicit
// user-triggered refresh.
func (s *AnalyticsService) RefreshAll(ctx context.Context) (map[string]any, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("refresh_all")
	defer marker.Complete()

	s.cacheManager.ClearAll()

	views := make(map[string]any, len(analytics.ViewNames))
	for _, viewName := range analytics.ViewNames {
		view, err := s.Get(ctx, viewName, analytics.Params{})
		if err != nil {
			marker.SetError(err)
			return nil, fmt.Errorf("refresh failed for view %s: %w", viewName, err)
		}
		views[viewName] = view
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Info("Full analytics refresh completed", "views", len(views), "duration", time.Since(start))

	if s.broadcaster != nil {
		s.broadcaster.NotifyRefresh(messaging.RefreshNotice{
			Kind:        "refresh",
			CompletedAt: time.Now().UTC(),
			Views:       analytics.ViewNames,
		})
	}
	return views, nil
}

// ClearCache drops cached views and the raw snapshot without
// recomputing anything; entries refill lazily.
func (s *AnalyticsService) ClearCache() {
	s.cacheManager.ClearAll()
}

// Snapshot pins the current raw snapshot, refreshing it when stale.
// Gather-all callers use this to tie all seven views to one snapshot.
func (s *AnalyticsService) Snapshot(ctx context.Context) *analytics.RawSnapshot {
	return s.cacheManager.Snapshots().Fetch(ctx, nil)
}

// computeView builds the named view from the current snapshot. The
// second return reports whether any source the view depends on was
// degraded at compute time.
func (s *AnalyticsService) computeView(ctx context.Context, viewName string, params analytics.Params) (any, bool, error) {
	marker := s.perfTracker.StartOperation("compute_" + viewName)
	defer marker.Complete()

	snapshot := s.cacheManager.Snapshots().Fetch(ctx, nil)
	now := time.Now().UTC()

	var view any
	var degraded bool
	switch viewName {
	case analytics.ViewSummary:
		view = compute.Summary(snapshot)
		degraded = snapshot.Degraded
	case analytics.ViewContent:
		records, ok := s.listContent(ctx)
		view = compute.Content(snapshot, records, params, now)
		degraded = snapshot.Degraded || !ok
	case analytics.ViewAuthors:
		records, ok := s.listContent(ctx)
		view = compute.Authors(records)
		degraded = !ok
	case analytics.ViewCategories:
		records, ok := s.listContent(ctx)
		view = compute.Categories(records)
		degraded = !ok
	case analytics.ViewTime:
		view = compute.TimeSeries(snapshot, params, now)
		degraded = snapshot.Degraded
	case analytics.ViewHourly:
		view = compute.Hourly(snapshot)
		degraded = snapshot.Degraded
	case analytics.ViewAccessPurpose:
		view = compute.AccessPurposes(snapshot)
		degraded = snapshot.Degraded
	default:
		err := fmt.Errorf("unknown view: %q", viewName)
		marker.SetError(err)
		return nil, false, err
	}

	marker.SetSuccess(true)
	return view, degraded, nil
}

// listContent reads the catalog, degrading to an empty catalog on
// source failure so content-independent views stay unaffected. The
// second return is false when the source failed.
func (s *AnalyticsService) listContent(ctx context.Context) ([]content.Record, bool) {
	records, err := s.contentStore.ListAll(ctx)
	if err != nil {
		s.logger.Analytics().Error("Content source fetch failed, using empty catalog", "error", err.Error())
		return nil, false
	}
	return records, true
}
