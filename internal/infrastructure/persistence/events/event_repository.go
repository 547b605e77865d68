// Package events provides the concrete SQL-based implementation of the
// interaction-event store.
//
// PURPOSE: persist instrumentation events as they arrive and serve the
// bulk queries behind the raw snapshot cache. This is SEPARATE from
// analytics computation, which only ever sees cached snapshots.
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
	"github.com/showcaseworks/showcase-go/pkg/config"
)

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		session_id TEXT,
		purpose TEXT,
		content_id TEXT,
		content_title TEXT,
		category TEXT,
		path TEXT,
		created_at TEXT NOT NULL
	)`

// SQLEventRepository handles event persistence and bulk reads against
// sqlite3 or libsql.
type SQLEventRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLEventRepository creates a new instance of the repository.
func NewSQLEventRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLEventRepository {
	return &SQLEventRepository{db: db, logger: logger}
}

// EnsureSchema creates the events table when missing.
func (r *SQLEventRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEventsTable); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	return nil
}

// Insert appends a validated batch of events.
func (r *SQLEventRepository) Insert(ctx context.Context, batch []events.Event) error {
	if len(batch) == 0 {
		return nil
	}

	const query = `
		INSERT INTO events (id, event_type, session_id, purpose, content_id, content_title, category, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin event insert: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range batch {
		if _, err := tx.ExecContext(ctx, query,
			ev.ID,
			ev.EventType,
			ev.Data.SessionID,
			ev.Data.Purpose,
			ev.Data.ContentID,
			ev.Data.ContentTitle,
			ev.Data.Category,
			ev.Data.Path,
			ev.Timestamp.UTC().Format(time.RFC3339),
		); err != nil {
			r.logger.Database().Error("Event insert failed", "error", err.Error(), "eventId", ev.ID, "eventType", ev.EventType)
			return fmt.Errorf("failed to store event %s: %w", ev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event batch: %w", err)
	}

	r.logger.Database().Debug("Event batch stored", "count", len(batch), "duration", time.Since(start))
	return nil
}

// QueryAll returns every event matching the optional filter, oldest first.
func (r *SQLEventRepository) QueryAll(ctx context.Context, filter *analytics.EventFilter) ([]events.Event, error) {
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
			args = append(args, filter.StartDate.UTC().Format(time.RFC3339))
		}
		if filter.EndDate != nil {
			clauses = append(clauses, "created_at <= ?")
			args = append(args, filter.EndDate.UTC().Format(time.RFC3339))
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC"

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var results []events.Event
	for rows.Next() {
		var ev events.Event
		var createdAt string
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
			// Skip the malformed row, keep the rest of the scan alive.
			r.logger.Database().Warn("Skipping unreadable event row", "error", err.Error())
			continue
		}

		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			r.logger.Database().Warn("Skipping event with unparsable timestamp", "eventId", ev.ID, "createdAt", createdAt)
			continue
		}
		ev.Timestamp = ts
		results = append(results, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event row iteration failed: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryWindow {
		r.logger.LogSlowQuery("events.QueryAll", duration)
	}
	r.logger.Database().Debug("Event query completed", "count", len(results), "duration", duration)
	return results, nil
}
