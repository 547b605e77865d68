// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showcaseworks/showcase-go/internal/application/container"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/presentation/http/server"
	"github.com/showcaseworks/showcase-go/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until
// shutdown completes
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	// Step 1: Create the channeled logger
	log.Println("Initializing...")
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    config.LogToFile,
		OutputToConsole: true,
		LogDirectory:    config.LogDirectory,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelInfo,
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized", "logToFile", config.LogToFile)

	// Step 2: Create dependency injection container (opens storage,
	// ensures schema, wires singleton services)
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(ctx, logger)
	if err != nil {
		return fmt.Errorf("container initialization failed: %w", err)
	}
	defer appContainer.Close()
	logger.Startup().Info("Dependency injection container created with singleton services", "driver", config.DBDriver)

	// Step 3: Start the ops broadcaster
	go appContainer.Broadcaster.Run()
	logger.Startup().Info("Ops broadcaster started")

	// Step 4: Start the event ingestion worker
	appContainer.IngestionService.Start()
	logger.Startup().Info("Event ingestion worker started", "queueSize", config.EventQueueSize)

	// Step 5: Start cache warming when enabled
	if config.WarmingEnabled {
		appContainer.WarmingService.Start()
		logger.Startup().Info("Cache warming started", "interval", config.WarmingInterval)
	} else {
		logger.Startup().Info("Cache warming disabled")
	}

	// Step 6: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Stop background work before the server so in-flight requests can
	// still be answered from cache
	cancelBackgroundTasks()
	if config.WarmingEnabled {
		appContainer.WarmingService.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Drain the ingestion queue last so accepted events reach storage
	logger.Shutdown().Info("Draining event ingestion queue...")
	appContainer.IngestionService.Stop()

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
