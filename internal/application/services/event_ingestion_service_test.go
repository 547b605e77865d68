package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

type fakeEventWriter struct {
	mu       sync.Mutex
	inserted []events.Event
	err      error
}

func (f *fakeEventWriter) Insert(ctx context.Context, batch []events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, batch...)
	return nil
}

func (f *fakeEventWriter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

func newTestIngestion(t *testing.T, writer *fakeEventWriter, queueSize int) *EventIngestionService {
	t.Helper()
	return NewEventIngestionService(writer, queueSize, testLogger(t), performance.NewTracker(100))
}

func TestIngestStampsIDAndTimestamp(t *testing.T) {
	svc := newTestIngestion(t, &fakeEventWriter{}, 8)

	accepted, err := svc.Ingest(events.Event{
		EventType: events.TypePageView,
		Data:      events.Data{SessionID: "s1", Path: "/"},
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if accepted.ID == "" {
		t.Error("Ingest should assign an ID")
	}
	if accepted.Timestamp.IsZero() {
		t.Error("Ingest should assign a timestamp")
	}
}

func TestIngestPreservesCallerFields(t *testing.T) {
	svc := newTestIngestion(t, &fakeEventWriter{}, 8)
	ts := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	accepted, err := svc.Ingest(events.Event{
		ID:        "given-id",
		EventType: events.TypePageView,
		Timestamp: ts,
		Data:      events.Data{SessionID: "s1"},
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if accepted.ID != "given-id" || !accepted.Timestamp.Equal(ts) {
		t.Errorf("Ingest overwrote caller fields: %+v", accepted)
	}
}

func TestIngestRejectsInvalidEvents(t *testing.T) {
	svc := newTestIngestion(t, &fakeEventWriter{}, 8)

	if _, err := svc.Ingest(events.Event{EventType: "click"}); err == nil {
		t.Error("unknown event type should be rejected")
	}
	if _, err := svc.Ingest(events.Event{EventType: events.TypeContentView, Data: events.Data{SessionID: "s1"}}); err == nil {
		t.Error("content_view without contentId should be rejected")
	}
}

func TestIngestQueueFull(t *testing.T) {
	svc := newTestIngestion(t, &fakeEventWriter{}, 1)
	// Worker not started, so the queue never drains.

	ev := events.Event{EventType: events.TypePageView, Data: events.Data{SessionID: "s1"}}
	if _, err := svc.Ingest(ev); err != nil {
		t.Fatalf("first Ingest failed: %v", err)
	}
	if _, err := svc.Ingest(ev); !errors.Is(err, ErrQueueFull) {
		t.Errorf("second Ingest error = %v, want ErrQueueFull", err)
	}
}

func TestWorkerPersistsAndDrainsOnStop(t *testing.T) {
	writer := &fakeEventWriter{}
	svc := newTestIngestion(t, writer, 32)
	svc.Start()

	for i := 0; i < 10; i++ {
		if _, err := svc.Ingest(events.Event{
			EventType: events.TypePageView,
			Data:      events.Data{SessionID: "s1"},
		}); err != nil {
			t.Fatalf("Ingest %d failed: %v", i, err)
		}
	}

	svc.Stop()

	if got := writer.count(); got != 10 {
		t.Errorf("persisted %d events, want 10", got)
	}
}
