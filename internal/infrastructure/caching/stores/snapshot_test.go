package stores

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
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

// fakeEventStore counts queries and can block or fail on demand.
type fakeEventStore struct {
	calls  atomic.Int64
	gate   chan struct{}
	err    error
	events []events.Event
}

func (f *fakeEventStore) QueryAll(ctx context.Context, filter *analytics.EventFilter) ([]events.Event, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func TestSnapshotFetchCachesWithinTTL(t *testing.T) {
	source := &fakeEventStore{events: []events.Event{{ID: "e1", EventType: events.TypePageView}}}
	store := NewSnapshotStore(source, testLogger(t), time.Hour, time.Second)

	first := store.Fetch(context.Background(), nil)
	second := store.Fetch(context.Background(), nil)

	if got := source.calls.Load(); got != 1 {
		t.Errorf("source queried %d times, want 1", got)
	}
	if first != second {
		t.Error("fresh snapshot should be returned unchanged on the second fetch")
	}
	if first.Degraded {
		t.Error("successful fetch should not be degraded")
	}
}

func TestSnapshotFetchRefreshesAfterTTL(t *testing.T) {
	source := &fakeEventStore{}
	store := NewSnapshotStore(source, testLogger(t), time.Nanosecond, time.Second)

	store.Fetch(context.Background(), nil)
	time.Sleep(time.Millisecond)
	store.Fetch(context.Background(), nil)

	if got := source.calls.Load(); got != 2 {
		t.Errorf("source queried %d times, want 2 after TTL expiry", got)
	}
}

func TestSnapshotConcurrentMissDedup(t *testing.T) {
	source := &fakeEventStore{gate: make(chan struct{})}
	store := NewSnapshotStore(source, testLogger(t), time.Hour, time.Minute)

	const callers = 8
	results := make([]*analytics.RawSnapshot, callers)
	var started, finished sync.WaitGroup
	started.Add(callers)
	finished.Add(callers)

	for i := 0; i < callers; i++ {
		go func(i int) {
			started.Done()
			results[i] = store.Fetch(context.Background(), nil)
			finished.Done()
		}(i)
	}

	started.Wait()
	// Let every caller reach the store before the source answers.
	time.Sleep(10 * time.Millisecond)
	close(source.gate)
	finished.Wait()

	if got := source.calls.Load(); got != 1 {
		t.Errorf("source queried %d times, want 1 shared in-flight fetch", got)
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d received a different snapshot than caller 0", i)
		}
	}
}

func TestSnapshotErrorServedEmptyNotCached(t *testing.T) {
	source := &fakeEventStore{err: errors.New("source down")}
	store := NewSnapshotStore(source, testLogger(t), time.Hour, time.Second)

	degraded := store.Fetch(context.Background(), nil)
	if !degraded.Degraded {
		t.Error("failed fetch should return a degraded snapshot")
	}
	if len(degraded.Events) != 0 {
		t.Errorf("degraded snapshot should be empty, got %d events", len(degraded.Events))
	}

	// Source recovers; the next call must retry instead of serving the
	// failed result.
	source.err = nil
	source.events = []events.Event{{ID: "e1", EventType: events.TypePageView}}

	recovered := store.Fetch(context.Background(), nil)
	if got := source.calls.Load(); got != 2 {
		t.Errorf("source queried %d times, want 2 (error result not cached)", got)
	}
	if recovered.Degraded || len(recovered.Events) != 1 {
		t.Errorf("recovered snapshot = degraded=%v events=%d, want healthy with 1 event", recovered.Degraded, len(recovered.Events))
	}
}

func TestSnapshotClearForcesRefetch(t *testing.T) {
	source := &fakeEventStore{}
	store := NewSnapshotStore(source, testLogger(t), time.Hour, time.Second)

	store.Fetch(context.Background(), nil)
	store.Clear()
	store.Fetch(context.Background(), nil)

	if got := source.calls.Load(); got != 2 {
		t.Errorf("source queried %d times, want 2 after Clear", got)
	}
}
