package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/persistence/database"
)

// ClickHouseEventRepository is the high-volume event store used when
// the portal's traffic outgrows sqlite. Inserts go through native
// batches; reads serve the same QueryAll contract as the SQL store.
type ClickHouseEventRepository struct {
	client *database.ClickHouseClient
	logger *logging.ChanneledLogger
}

// NewClickHouseEventRepository creates a new instance of the repository.
func NewClickHouseEventRepository(client *database.ClickHouseClient, logger *logging.ChanneledLogger) *ClickHouseEventRepository {
	return &ClickHouseEventRepository{client: client, logger: logger}
}

// EnsureSchema creates the events table when missing.
func (r *ClickHouseEventRepository) EnsureSchema(ctx context.Context) error {
	err := r.client.Conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id            String,
			event_type    LowCardinality(String),
			session_id    String,
			purpose       LowCardinality(String),
			content_id    String,
			content_title String,
			category      LowCardinality(String),
			path          String,
			created_at    DateTime('UTC')
		) ENGINE = MergeTree()
		ORDER BY (created_at, id)`)
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

// Insert appends a validated batch of events via a native batch insert.
func (r *ClickHouseEventRepository) Insert(ctx context.Context, batch []events.Event) error {
	if len(batch) == 0 {
		return nil
	}

	prepared, err := r.client.Conn.PrepareBatch(ctx, `
		INSERT INTO events (id, event_type, session_id, purpose, content_id, content_title, category, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, ev := range batch {
		if err := prepared.Append(
			ev.ID,
			ev.EventType,
			ev.Data.SessionID,
			ev.Data.Purpose,
			ev.Data.ContentID,
			ev.Data.ContentTitle,
			ev.Data.Category,
			ev.Data.Path,
			ev.Timestamp.UTC(),
		); err != nil {
			r.logger.Database().Error("Failed to append event to batch", "error", err.Error(), "eventId", ev.ID)
		}
	}

	if err := prepared.Send(); err != nil {
		return fmt.Errorf("failed to send event batch: %w", err)
	}

	r.logger.Database().Debug("Event batch stored", "count", len(batch))
	return nil
}

// QueryAll returns every event matching the optional filter, oldest first.
func (r *ClickHouseEventRepository) QueryAll(ctx context.Context, filter *analytics.EventFilter) ([]events.Event, error) {
	query := `
		SELECT id, event_type, session_id, purpose, content_id, content_title, category, path, created_at
		FROM events`

	var clauses []string
	var args []any
	if filter != nil {
		if filter.EventType != "" {
			clauses = append(clauses, "event_type = ?")
			args = append(args, filter.EventType)
		}
		if filter.StartDate != nil {
			clauses = append(clauses, "created_at >= ?")
			args = append(args, filter.StartDate.UTC())
		}
		if filter.EndDate != nil {
			clauses = append(clauses, "created_at <= ?")
			args = append(args, filter.EndDate.UTC())
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC"

	start := time.Now()
	rows, err := r.client.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var results []events.Event
	for rows.Next() {
		var ev events.Event
		var createdAt time.Time
		if err := rows.Scan(
			&ev.ID,
			&ev.EventType,
			&ev.Data.SessionID,
			&ev.Data.Purpose,
			&ev.Data.ContentID,
			&ev.Data.ContentTitle,
			&ev.Data.Category,
			&ev.Data.Path,
			&createdAt,
		); err != nil {
			r.logger.Database().Warn("Skipping unreadable event row", "error", err.Error())
			continue
		}
		ev.Timestamp = createdAt
		results = append(results, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event row iteration failed: %w", err)
	}

	r.logger.Database().Debug("Event query completed", "count", len(results), "duration", time.Since(start))
	return results, nil
}
