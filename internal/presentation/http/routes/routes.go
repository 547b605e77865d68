// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/showcaseworks/showcase-go/internal/application/container"
	"github.com/showcaseworks/showcase-go/internal/presentation/http/handlers"
	"github.com/showcaseworks/showcase-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	analyticsHandlers := handlers.NewAnalyticsHandlers(container.AnalyticsService, container.ReportService, container.Logger, container.PerfTracker)
	eventHandlers := handlers.NewEventHandlers(container.IngestionService, container.Logger)
	contentHandlers := handlers.NewContentHandlers(container.ContentStore, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	opsHandlers := handlers.NewOpsHandlers(container)

	api := r.Group("/api/v1")
	{
		api.GET("/health", opsHandlers.HandleHealth)

		// Authentication
		api.POST("/auth/login", authHandlers.HandleLogin)

		// Event ingestion
		api.POST("/events", eventHandlers.HandlePostEvent)

		// Content catalog
		api.GET("/content", contentHandlers.HandleListContent)

		// Analytics endpoints
		analytics := api.Group("/analytics")
		{
			analytics.GET("/report", analyticsHandlers.HandleUnifiedReport)
			analytics.GET("/:view", analyticsHandlers.HandleView)
			analytics.POST("/refresh", middleware.AdminAuthMiddleware(), analyticsHandlers.HandleRefresh)
		}

		// Operational endpoints
		ops := api.Group("/ops")
		{
			ops.GET("/live", opsHandlers.HandleLive)
			ops.GET("/metrics", middleware.AdminAuthMiddleware(), opsHandlers.HandleMetrics)
		}
	}

	return r
}
