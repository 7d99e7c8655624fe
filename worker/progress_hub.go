package worker

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// ProgressHub fans export progress events out to connected WebSocket clients
type ProgressHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{clients: make(map[*websocket.Conn]struct{})}
}

// Serve registers the connection and blocks until it closes. The read loop
// only exists to detect disconnects; clients are not expected to send
// anything.
func (h *ProgressHub) Serve(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends the event to every connected client, dropping clients
// whose writes fail.
func (h *ProgressHub) Broadcast(event interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteJSON(event); err != nil {
			delete(h.clients, c)
			c.Close()
		}
	}
}
