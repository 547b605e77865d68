package services

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

// ErrQueueFull is returned when the ingestion buffer cannot accept
// another event without blocking the caller.
var ErrQueueFull = errors.New("event queue full")

// EventIngestionService accepts raw events from the HTTP layer,
// validates and stamps them, and persists them through a background
// worker so request handlers never block on the event store.
type EventIngestionService struct {
	writer      analytics.EventWriter
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
	queue       chan events.Event
	done        chan struct{}
}

// NewEventIngestionService creates the ingestion pipeline with the
// given buffer size.
func NewEventIngestionService(writer analytics.EventWriter, queueSize int, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EventIngestionService {
	return &EventIngestionService{
		writer:      writer,
		logger:      logger,
		perfTracker: perfTracker,
		queue:       make(chan events.Event, queueSize),
		done:        make(chan struct{}),
	}
}

// Ingest validates the event, assigns its ID and timestamp when
// missing, and enqueues it. It never blocks: a full queue rejects the
// event with ErrQueueFull.
func (s *EventIngestionService) Ingest(event events.Event) (events.Event, error) {
	if event.ID == "" {
		event.ID = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := event.Validate(); err != nil {
		return events.Event{}, err
	}

	select {
	case s.queue <- event:
		return event, nil
	default:
		s.logger.Events().Warn("Event queue full, dropping event", "eventType", event.EventType, "sessionId", event.Data.SessionID)
		return events.Event{}, ErrQueueFull
	}
}

// Start launches the background writer. It returns immediately; call
// Stop to drain and shut down.
func (s *EventIngestionService) Start() {
	go s.run()
}

// Stop closes the queue and waits for the worker to drain it.
func (s *EventIngestionService) Stop() {
	close(s.queue)
	<-s.done
}

func (s *EventIngestionService) run() {
	defer close(s.done)
	for event := range s.queue {
		batch := []events.Event{event}
		// Drain whatever else is already queued into the same write.
	drain:
		for len(batch) < 64 {
			select {
			case next, ok := <-s.queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		s.persist(batch)
	}
}

func (s *EventIngestionService) persist(batch []events.Event) {
	marker := s.perfTracker.StartOperation("event_persist")
	defer marker.Complete()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.writer.Insert(ctx, batch); err != nil {
		marker.SetError(err)
		s.logger.Events().Error("Event batch insert failed", "count", len(batch), "error", err.Error())
		return
	}
	marker.SetSuccess(true)
	s.logger.Events().Debug("Event batch persisted", "count", len(batch))
}
