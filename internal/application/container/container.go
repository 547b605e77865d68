// Package container provides dependency injection for all singleton services
package container

import (
	"context"
	"fmt"

	"github.com/showcaseworks/showcase-go/internal/application/services"
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/manager"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/messaging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/persistence/content"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/persistence/database"
	eventstore "github.com/showcaseworks/showcase-go/internal/infrastructure/persistence/events"
	"github.com/showcaseworks/showcase-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	AnalyticsService *services.AnalyticsService
	ReportService    *services.ReportService
	IngestionService *services.EventIngestionService
	AuthService      *services.AuthService
	WarmingService   *services.WarmingService

	// Infrastructure dependencies
	ContentStore analytics.ContentStore
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
	CacheManager *manager.Manager
	Broadcaster  *messaging.Broadcaster

	db         *database.DB
	clickhouse *database.ClickHouseClient
}

// NewContainer opens the configured storage backend and wires all
// singleton services
func NewContainer(ctx context.Context, logger *logging.ChanneledLogger) (*Container, error) {
	perfTracker := performance.NewTracker(1000)
	broadcaster := messaging.NewBroadcaster(logger)

	c := &Container{
		Logger:      logger,
		PerfTracker: perfTracker,
		Broadcaster: broadcaster,
	}

	var (
		eventStore   analytics.EventStore
		eventWriter  analytics.EventWriter
		contentStore analytics.ContentStore
	)

	switch config.DBDriver {
	case "clickhouse":
		client, err := database.NewClickHouseClient(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
		}
		c.clickhouse = client

		repo := eventstore.NewClickHouseEventRepository(client, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure clickhouse schema: %w", err)
		}
		eventStore = repo
		eventWriter = repo

		// Catalog stays in SQLite/libsql even when events live in
		// ClickHouse.
		db, err := database.NewConnection(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		c.db = db
		catalogRepo := content.NewSQLContentRepository(db, logger)
		if err := catalogRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure content schema: %w", err)
		}
		contentStore = catalogRepo

	default:
		db, err := database.NewConnection(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db

		eventRepo := eventstore.NewSQLEventRepository(db, logger)
		if err := eventRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure events schema: %w", err)
		}
		eventStore = eventRepo
		eventWriter = eventRepo

		catalogRepo := content.NewSQLContentRepository(db, logger)
		if err := catalogRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure content schema: %w", err)
		}
		contentStore = catalogRepo
	}

	c.ContentStore = contentStore
	c.CacheManager = manager.New(eventStore, logger)

	c.AnalyticsService = services.NewAnalyticsService(c.CacheManager, contentStore, broadcaster, logger, perfTracker)
	c.ReportService = services.NewReportService(c.AnalyticsService, logger, perfTracker)
	c.IngestionService = services.NewEventIngestionService(eventWriter, config.EventQueueSize, logger, perfTracker)
	c.AuthService = services.NewAuthService(config.JWTSecret, config.AdminPasswordHash, config.TokenTTL, logger)
	c.WarmingService = services.NewWarmingService(c.AnalyticsService, broadcaster, config.WarmingInterval, logger)

	return c, nil
}

// Close releases the storage connections held by the container
func (c *Container) Close() error {
	var firstErr error
	if c.db != nil {
		if err := c.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.clickhouse != nil {
		if err := c.clickhouse.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
