// Package config provides centralized default values for the showcase analytics service
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration overrides from .env file")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DBDriver                 string // "sqlite3", "libsql" or "clickhouse"
	DBPath                   string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int

	// ClickHouse Configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	// TTL Configuration
	SnapshotTTL  time.Duration
	ViewCacheTTL time.Duration

	// Source query bounds
	SourceQueryTimeout time.Duration

	// Event ingestion
	EventQueueSize int

	// Cache warming
	WarmingEnabled  bool
	WarmingInterval time.Duration

	// Auth Configuration
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration

	// Logging
	LogDirectory    string
	LogToFile       bool
	SlowQueryWindow time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath = getEnvString("DB_PATH", "showcase.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)

	// ClickHouse Configuration
	ClickHouseHost = getEnvString("CLICKHOUSE_HOST", "localhost")
	ClickHousePort = getEnvInt("CLICKHOUSE_NATIVE_PORT", 9000)
	ClickHouseDatabase = getEnvString("CLICKHOUSE_DB_NAME", "showcase")
	ClickHouseUsername = getEnvString("CLICKHOUSE_USERNAME", "default")
	ClickHousePassword = getEnvString("CLICKHOUSE_PASSWORD", "")

	// TTL Configuration
	SnapshotTTL = time.Duration(getEnvInt("SNAPSHOT_TTL_MINUTES", 5)) * time.Minute
	ViewCacheTTL = time.Duration(getEnvInt("VIEW_CACHE_TTL_MINUTES", 5)) * time.Minute

	// Source query bounds
	SourceQueryTimeout = getEnvDuration("SOURCE_QUERY_TIMEOUT", 10*time.Second)

	// Event ingestion
	EventQueueSize = getEnvInt("EVENT_QUEUE_SIZE", 1024)

	// Cache warming
	WarmingEnabled = getEnvBool("CACHE_WARMING_ENABLED", false)
	WarmingInterval = getEnvDuration("CACHE_WARMING_INTERVAL", 4*time.Minute)

	// Auth Configuration
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)

	// Logging
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", false)
	SlowQueryWindow = getEnvDuration("SLOW_QUERY_WINDOW", 500*time.Millisecond)
}
