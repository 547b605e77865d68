// Package messaging provides the websocket broadcaster behind the ops
// live channel.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
)

// Client represents a single connected ops dashboard client.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// RefreshNotice is pushed to every connected client after an analytics
// refresh or warm cycle completes.
type RefreshNotice struct {
	Kind        string    `json:"kind"` // "refresh" or "warm"
	CompletedAt time.Time `json:"completedAt"`
	Views       []string  `json:"views,omitempty"`
}

// Broadcaster manages connected ops clients and fan-out of refresh notices.
type Broadcaster struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	notices    chan RefreshNotice
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewBroadcaster creates a new broadcaster instance.
func NewBroadcaster(logger *logging.ChanneledLogger) *Broadcaster {
	return &Broadcaster{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		notices:    make(chan RefreshNotice, 16),
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *Broadcaster) Run() {
	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.Ops().Debug("Ops client registered", "clients", b.ClientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.Ops().Debug("Ops client unregistered", "clients", b.ClientCount())

		case notice := <-b.notices:
			b.fanOut(notice)
		}
	}
}

// Register adds a client to the broadcast set.
func (b *Broadcaster) Register(client *Client) {
	b.register <- client
}

// Unregister removes a client from the broadcast set.
func (b *Broadcaster) Unregister(client *Client) {
	b.unregister <- client
}

// NotifyRefresh queues a refresh notice for fan-out. Never blocks the
// refresh path; the notice is dropped when the queue is full.
func (b *Broadcaster) NotifyRefresh(notice RefreshNotice) {
	select {
	case b.notices <- notice:
	default:
		b.logger.Ops().Warn("Dropping refresh notice, broadcast queue full")
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) fanOut(notice RefreshNotice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		b.logger.Ops().Error("Failed to encode refresh notice", "error", err.Error())
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; skip rather than stall the loop.
		}
	}
}

// WritePump drains a client's send channel onto its websocket
// connection. Runs as one goroutine per client.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
