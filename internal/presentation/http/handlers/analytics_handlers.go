// Package handlers provides HTTP handlers for the portal API
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showcaseworks/showcase-go/internal/application/services"
	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/performance"
)

// viewRoutes maps URL path segments onto derived view names.
var viewRoutes = map[string]string{
	"summary":        analytics.ViewSummary,
	"content":        analytics.ViewContent,
	"authors":        analytics.ViewAuthors,
	"categories":     analytics.ViewCategories,
	"time":           analytics.ViewTime,
	"hourly":         analytics.ViewHourly,
	"access-purpose": analytics.ViewAccessPurpose,
}

// AnalyticsHandlers contains all analytics-related HTTP handlers
type AnalyticsHandlers struct {
	analyticsService *services.AnalyticsService
	reportService    *services.ReportService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, reportService *services.ReportService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		reportService:    reportService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// HandleView handles GET /api/v1/analytics/:view
func (h *AnalyticsHandlers) HandleView(c *gin.Context) {
	start := time.Now()

	viewName, ok := viewRoutes[c.Param("view")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown analytics view"})
		return
	}

	params := analytics.Params{Period: c.Query("period")}
	view, err := h.analyticsService.Get(c.Request.Context(), viewName, params)
	if err != nil {
		h.logger.Analytics().Error("Analytics view request failed", "view", viewName, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics view"})
		return
	}

	h.logger.Analytics().Debug("Analytics view served", "view", viewName, "period", params.Period, "duration", time.Since(start))
	c.JSON(http.StatusOK, view)
}

// HandleUnifiedReport handles GET /api/v1/analytics/report
func (h *AnalyticsHandlers) HandleUnifiedReport(c *gin.Context) {
	start := time.Now()

	params := analytics.Params{Period: c.Query("period")}
	report := h.reportService.GatherAll(c.Request.Context(), params)

	h.logger.Analytics().Debug("Unified report served",
		"period", params.Period,
		"completeness", report.Metadata.DataCompleteness,
		"duration", time.Since(start))
	c.JSON(http.StatusOK, report)
}

// HandleRefresh handles POST /api/v1/analytics/refresh
func (h *AnalyticsHandlers) HandleRefresh(c *gin.Context) {
	start := time.Now()

	views, err := h.analyticsService.RefreshAll(c.Request.Context())
	if err != nil {
		h.logger.Analytics().Error("Analytics refresh failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	h.logger.Analytics().Info("Analytics refresh served", "views", len(views), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"refreshedAt": time.Now().UTC(),
		"views":       views,
	})
}
