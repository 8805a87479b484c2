package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event actions broadcast to catalog listeners
const (
	ActionProductCreated = "product_created"
	ActionProductUpdated = "product_updated"
	ActionProductDeleted = "product_deleted"
	ActionCatalogPurged  = "catalog_purged"
)

// Event is the JSON payload pushed to every connected client
type Event struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	ProductID string `json:"product_id,omitempty"`
	Product   any    `json:"product,omitempty"`
	Message   string `json:"message"`
}

// queueSize bounds the events waiting for the broadcast loop
const queueSize = 256

// Hub fans catalog events out to the connected websocket listeners.
type Hub struct {
	logger     *slog.Logger
	listeners  map[*websocket.Conn]struct{}
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		listeners:  make(map[*websocket.Conn]struct{}),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, queueSize),
		done:       make(chan struct{}),
	}
}

// Publish encodes the event and queues it for the broadcast loop. Events are
// delivered in publish order. Publish never blocks: when the queue is full or
// the hub has stopped the event is dropped.
func (h *Hub) Publish(event Event) {
	if event.Type == "" {
		event.Type = "catalog_update"
	}
	msg, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws event encoding failed",
			slog.String("action", event.Action),
			slog.String("error", err.Error()),
		)
		return
	}
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("ws event dropped, broadcast queue full",
			slog.String("action", event.Action),
			slog.Int("queued", len(h.broadcast)),
		)
	}
}

// ClientCount reports how many websocket clients are connected
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Serve attaches conn to the hub until the client goes away. Listeners are
// receive-only, inbound frames are read and discarded to detect the close.
func (h *Hub) Serve(conn *websocket.Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		return
	}
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Run owns the listener set until ctx is cancelled, then closes every
// remaining connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for conn := range h.listeners {
				conn.Close()
				delete(h.listeners, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.listeners[conn] = struct{}{}
			n := len(h.listeners)
			h.mu.Unlock()
			h.logger.Debug("ws listener connected", slog.Int("listeners", n))

		case conn := <-h.unregister:
			h.drop(conn)

		case msg := <-h.broadcast:
			h.mu.Lock()
			var dead []*websocket.Conn
			for conn := range h.listeners {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.Unlock()
			for _, conn := range dead {
				h.drop(conn)
			}
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.listeners[conn]; ok {
		delete(h.listeners, conn)
		conn.Close()
	}
}
