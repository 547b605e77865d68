package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showcaseworks/showcase-go/internal/domain/analytics"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
)

// ContentHandlers serves the raw content catalog
type ContentHandlers struct {
	contentStore analytics.ContentStore
	logger       *logging.ChanneledLogger
}

// NewContentHandlers creates content handlers with injected dependencies
func NewContentHandlers(contentStore analytics.ContentStore, logger *logging.ChanneledLogger) *ContentHandlers {
	return &ContentHandlers{contentStore: contentStore, logger: logger}
}

// HandleListContent handles GET /api/v1/content
func (h *ContentHandlers) HandleListContent(c *gin.Context) {
	start := time.Now()

	records, err := h.contentStore.ListAll(c.Request.Context())
	if err != nil {
		h.logger.System().Error("Content catalog fetch failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load content catalog"})
		return
	}

	h.logger.System().Debug("Content catalog served", "count", len(records), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"content": records, "count": len(records)})
}
