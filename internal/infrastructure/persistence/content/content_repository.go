// Package content provides the concrete SQL-based implementation of
// the content catalog store.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/showcaseworks/showcase-go/internal/domain/entities/content"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/persistence/database"
	"github.com/showcaseworks/showcase-go/pkg/config"
)

const createContentTable = `
	CREATE TABLE IF NOT EXISTS content (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT,
		category TEXT,
		views INTEGER NOT NULL DEFAULT 0,
		likes INTEGER NOT NULL DEFAULT 0,
		tags TEXT,
		created_at TEXT NOT NULL
	)`

// SQLContentRepository serves catalog reads. The views/likes counters
// are written by the content mutation paths outside this service.
type SQLContentRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLContentRepository creates a new instance of the repository.
func NewSQLContentRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLContentRepository {
	return &SQLContentRepository{db: db, logger: logger}
}

// EnsureSchema creates the content table when missing.
func (r *SQLContentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createContentTable); err != nil {
		return fmt.Errorf("failed to create content table: %w", err)
	}
	return nil
}

// ListAll returns the full content catalog.
func (r *SQLContentRepository) ListAll(ctx context.Context) ([]content.Record, error) {
	const query = `
		SELECT id, title, author, category, views, likes, tags, created_at
		FROM content
		ORDER BY created_at ASC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	var records []content.Record
	for rows.Next() {
		var rec content.Record
		var tags, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.Category, &rec.Views, &rec.Likes, &tags, &createdAt); err != nil {
			r.logger.Database().Warn("Skipping unreadable content row", "error", err.Error())
			continue
		}

		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
				r.logger.Database().Warn("Skipping malformed content tags", "contentId", rec.ID, "error", err.Error())
			}
		}
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			r.logger.Database().Warn("Skipping content with unparsable createdAt", "contentId", rec.ID, "createdAt", createdAt)
			continue
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content row iteration failed: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryWindow {
		r.logger.LogSlowQuery("content.ListAll", duration)
	}
	r.logger.Database().Debug("Content query completed", "count", len(records), "duration", duration)
	return records, nil
}
