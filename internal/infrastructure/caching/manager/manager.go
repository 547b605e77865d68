// Package manager provides the cache manager facade owned by the
// service container. One instance exists per process; consumers get
// it injected rather than reaching for globals.
package manager

import (
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/caching/stores"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/pkg/config"
)

// Manager bundles the snapshot and view caches.
type Manager struct {
	snapshots *stores.SnapshotStore
	views     *stores.ViewStore
	logger    *logging.ChanneledLogger
}

// New creates the cache manager over the given event source.
func New(source analytics.EventStore, logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		snapshots: stores.NewSnapshotStore(source, logger, config.SnapshotTTL, config.SourceQueryTimeout),
		views:     stores.NewViewStore(config.ViewCacheTTL),
		logger:    logger,
	}
}

// Snapshots returns the raw snapshot cache.
func (m *Manager) Snapshots() *stores.SnapshotStore { return m.snapshots }

// Views returns the derived view cache.
func (m *Manager) Views() *stores.ViewStore { return m.views }

// ClearAll drops both caches. Used by the explicit refresh path.
func (m *Manager) ClearAll() {
	m.views.Clear()
	m.snapshots.Clear()
	m.logger.Cache().Info("All caches cleared")
}
