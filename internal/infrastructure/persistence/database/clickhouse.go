package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/pkg/config"
)

// ClickHouseClient wraps a native-protocol ClickHouse connection for
// high-volume event deployments.
type ClickHouseClient struct {
	Conn clickhouse.Conn
}

// NewClickHouseClient connects to ClickHouse using the configured
// host, database, and credentials.
func NewClickHouseClient(logger *logging.ChanneledLogger) (*ClickHouseClient, error) {
	start := time.Now()

	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", config.ClickHouseHost, config.ClickHousePort)},
		Auth: clickhouse.Auth{
			Database: config.ClickHouseDatabase,
			Username: config.ClickHouseUsername,
			Password: config.ClickHousePassword,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ClickHouse ping failed: %w", err)
	}

	logger.Database().Info("ClickHouse connection established",
		"host", config.ClickHouseHost,
		"database", config.ClickHouseDatabase,
		"duration", time.Since(start))
	return &ClickHouseClient{Conn: conn}, nil
}

// Close releases the underlying connection pool.
func (c *ClickHouseClient) Close() error {
	return c.Conn.Close()
}
