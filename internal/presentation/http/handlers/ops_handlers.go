package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/showcaseworks/showcase-go/internal/application/container"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/messaging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer; the live channel carries
	// no sensitive data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OpsHandlers serves the operational endpoints: health, performance
// metrics, and the live refresh-notice channel.
type OpsHandlers struct {
	container *container.Container
	startedAt time.Time
}

// NewOpsHandlers creates ops handlers bound to the container
func NewOpsHandlers(c *container.Container) *OpsHandlers {
	return &OpsHandlers{container: c, startedAt: time.Now().UTC()}
}

// HandleHealth handles GET /api/v1/health
func (h *OpsHandlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).String(),
		"liveConns": h.container.Broadcaster.ClientCount(),
	})
}

// HandleMetrics handles GET /api/v1/ops/metrics
func (h *OpsHandlers) HandleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"overall": h.container.PerfTracker.OverallStats(),
		"recent":  h.container.PerfTracker.RecentMetrics(5 * time.Minute),
	})
}

// HandleLive handles GET /api/v1/ops/live and upgrades the connection
// to a websocket that streams refresh notices.
func (h *OpsHandlers) HandleLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.container.Logger.Ops().Error("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.Client{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.container.Broadcaster.Register(client)
	h.container.Logger.Ops().Info("Live channel client connected", "remote", conn.RemoteAddr().String())

	go client.WritePump()

	// Reader loop only detects disconnects; clients never send data.
	go func() {
		defer func() {
			h.container.Broadcaster.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
