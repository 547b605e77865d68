package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/showcaseworks/showcase-go/internal/application/services"
	"github.com/showcaseworks/showcase-go/internal/domain/events"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
)

// EventHandlers contains the event ingestion HTTP handlers
type EventHandlers struct {
	ingestionService *services.EventIngestionService
	logger           *logging.ChanneledLogger
}

// NewEventHandlers creates event handlers with injected dependencies
func NewEventHandlers(ingestionService *services.EventIngestionService, logger *logging.ChanneledLogger) *EventHandlers {
	return &EventHandlers{ingestionService: ingestionService, logger: logger}
}

// HandlePostEvent handles POST /api/v1/events
func (h *EventHandlers) HandlePostEvent(c *gin.Context) {
	var event events.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	accepted, err := h.ingestionService.Ingest(event)
	if err != nil {
		if errors.Is(err, services.ErrQueueFull) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event queue full, retry later"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":        accepted.ID,
		"eventType": accepted.EventType,
		"timestamp": accepted.Timestamp,
	})
}
