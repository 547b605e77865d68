package services

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/manager"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: true,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return logger
}

type fakeEventStore struct {
	calls  atomic.Int64
	err    error
	events []events.Event
}

func (f *fakeEventStore) QueryAll(ctx context.Context, filter *analytics.EventFilter) ([]events.Event, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type fakeContentStore struct {
	calls   atomic.Int64
	err     error
	records []content.Record
}

func (f *fakeContentStore) ListAll(ctx context.Context) ([]content.Record, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func eventAt(eventType, session string, ts time.Time) events.Event {
	return events.Event{EventType: eventType, Timestamp: ts, Data: events.Data{SessionID: session}}
}

func newTestAnalyticsService(t *testing.T, eventStore *fakeEventStore, contentStore *fakeContentStore) *AnalyticsService {
	t.Helper()
	logger := testLogger(t)
	cacheManager := manager.New(eventStore, logger)
	return NewAnalyticsService(cacheManager, contentStore, nil, logger, performance.NewTracker(100))
}

func TestGetServesFromViewCache(t *testing.T) {
	ts := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	eventStore := &fakeEventStore{events: []events.Event{eventAt(events.TypePageView, "s1", ts)}}
	contentStore := &fakeContentStore{}
	svc := newTestAnalyticsService(t, eventStore, contentStore)

	first, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if eventStore.calls.Load() != 1 {
		t.Errorf("source queried %d times, want 1 (second Get served from view cache)", eventStore.calls.Load())
	}
	summary, ok := second.(*analytics.Summary)
	if !ok {
		t.Fatalf("Get returned %T, want *analytics.Summary", second)
	}
	if summary.TotalPageViews != 1 {
		t.Errorf("TotalPageViews = %d, want 1", summary.TotalPageViews)
	}
	if first != second {
		t.Error("cached view should be the same value across calls")
	}
}

func TestGetDifferentParamsRecompute(t *testing.T) {
	now := time.Now().UTC()
	eventStore := &fakeEventStore{events: []events.Event{eventAt(events.TypePageView, "s1", now)}}
	svc := newTestAnalyticsService(t, eventStore, &fakeContentStore{})

	if _, err := svc.Get(context.Background(), analytics.ViewTime, analytics.Params{Period: "week"}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), analytics.ViewTime, analytics.Params{Period: "month"}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Two view-cache entries, but both computed off the one cached snapshot.
	if eventStore.calls.Load() != 1 {
		t.Errorf("source queried %d times, want 1 shared snapshot", eventStore.calls.Load())
	}
	if got := svc.cacheManager.Views().Len(); got != 2 {
		t.Errorf("view cache holds %d entries, want 2", got)
	}
}

func TestGetUnknownViewFails(t *testing.T) {
	svc := newTestAnalyticsService(t, &fakeEventStore{}, &fakeContentStore{})

	if _, err := svc.Get(context.Background(), "bogus", analytics.Params{}); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestGetContentSourceFailureDegradesToEmptyCatalog(t *testing.T) {
	eventStore := &fakeEventStore{events: []events.Event{eventAt(events.TypePageView, "s1", time.Now().UTC())}}
	contentStore := &fakeContentStore{err: errors.New("catalog down")}
	svc := newTestAnalyticsService(t, eventStore, contentStore)

	view, err := svc.Get(context.Background(), analytics.ViewAuthors, analytics.Params{})
	if err != nil {
		t.Fatalf("Get should not fail on catalog errors: %v", err)
	}
	authors, ok := view.([]analytics.AuthorStats)
	if !ok {
		t.Fatalf("Get returned %T, want []analytics.AuthorStats", view)
	}
	if len(authors) != 0 {
		t.Errorf("expected empty authors view under catalog failure, got %d", len(authors))
	}

	// Summary is event-only and stays unaffected.
	sview, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !sview.(*analytics.Summary).HasData() {
		t.Error("summary should still carry event data when the catalog fails")
	}
}

func TestGetRetriesEventSourceAfterFailure(t *testing.T) {
	eventStore := &fakeEventStore{err: errors.New("source down")}
	svc := newTestAnalyticsService(t, eventStore, &fakeContentStore{})

	view, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{})
	if err != nil {
		t.Fatalf("Get should not fail on source errors: %v", err)
	}
	if view.(*analytics.Summary).HasData() {
		t.Error("summary computed from a failed source should be empty")
	}

	// Source recovers. The empty view must not have been cached, so the
	// next call within the TTL window retries instead of replaying it.
	eventStore.err = nil
	eventStore.events = []events.Event{eventAt(events.TypePageView, "s1", time.Now().UTC())}

	view, err = svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{})
	if err != nil {
		t.Fatalf("Get failed after recovery: %v", err)
	}
	if !view.(*analytics.Summary).HasData() {
		t.Error("recovered source should serve real data on the next Get")
	}
	if eventStore.calls.Load() != 2 {
		t.Errorf("source queried %d times, want 2 (retry after failure)", eventStore.calls.Load())
	}
}

func TestGetRetriesCatalogAfterFailure(t *testing.T) {
	contentStore := &fakeContentStore{err: errors.New("catalog down")}
	svc := newTestAnalyticsService(t, &fakeEventStore{}, contentStore)

	view, err := svc.Get(context.Background(), analytics.ViewAuthors, analytics.Params{})
	if err != nil {
		t.Fatalf("Get should not fail on catalog errors: %v", err)
	}
	if got := len(view.([]analytics.AuthorStats)); got != 0 {
		t.Fatalf("expected empty authors view under catalog failure, got %d", got)
	}

	contentStore.err = nil
	contentStore.records = []content.Record{{ID: "c1", Title: "Alpha", Author: "Alice", Category: "ml", Views: 5}}

	view, err = svc.Get(context.Background(), analytics.ViewAuthors, analytics.Params{})
	if err != nil {
		t.Fatalf("Get failed after recovery: %v", err)
	}
	if got := len(view.([]analytics.AuthorStats)); got != 1 {
		t.Errorf("expected 1 author after catalog recovery, got %d (degraded view was cached)", got)
	}
}

func TestRefreshAllRecomputesEverything(t *testing.T) {
	eventStore := &fakeEventStore{events: []events.Event{eventAt(events.TypePageView, "s1", time.Now().UTC())}}
	svc := newTestAnalyticsService(t, eventStore, &fakeContentStore{})

	if _, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	views, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}
	if len(views) != len(analytics.ViewNames) {
		t.Errorf("RefreshAll returned %d views, want %d", len(views), len(analytics.ViewNames))
	}
	// Initial Get plus the post-clear refetch.
	if eventStore.calls.Load() != 2 {
		t.Errorf("source queried %d times, want 2 (refresh bypasses TTL)", eventStore.calls.Load())
	}
}

func TestClearCacheForcesSnapshotRefetch(t *testing.T) {
	eventStore := &fakeEventStore{}
	svc := newTestAnalyticsService(t, eventStore, &fakeContentStore{})

	if _, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	svc.ClearCache()
	if _, err := svc.Get(context.Background(), analytics.ViewSummary, analytics.Params{}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if eventStore.calls.Load() != 2 {
		t.Errorf("source queried %d times, want 2 after ClearCache", eventStore.calls.Load())
	}
}
