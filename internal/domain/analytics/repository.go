// Package analytics defines the derived-view types and the read ports
// the aggregation engine depends on.
package analytics

import (
	"context"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
)

// EventFilter narrows a bulk event query. All fields are optional.
type EventFilter struct {
	EventType string
	StartDate *time.Time
	EndDate   *time.Time
}

// EventStore is the sole read dependency on the interaction-event log.
// Invocation frequency is bounded by the snapshot cache in front of it.
type EventStore interface {
	QueryAll(ctx context.Context, filter *EventFilter) ([]events.Event, error)
}

// ContentStore is the sole read dependency on the content catalog.
type ContentStore interface {
	ListAll(ctx context.Context) ([]content.Record, error)
}

// EventWriter is the persistence port behind the fire-and-forget
// ingestion dispatcher. Aggregation itself never writes.
type EventWriter interface {
	Insert(ctx context.Context, batch []events.Event) error
}
