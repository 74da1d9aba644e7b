// Package ws pushes live booking events to connected users. Delivery is
// best-effort: a missing connection or a full client buffer drops the event.
package ws

import (
	"sync"
	"time"

	"local-services-server/logging"
)

// Event is a server-to-client push message
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub manages all connected clients, keyed by user id
type Hub struct {
	clients    map[uint]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if existing, ok := h.clients[client.userID]; ok {
				close(existing.send)
			}
			h.clients[client.userID] = client
			h.mu.Unlock()
			logging.Log.WithField("user_id", client.userID).Debug("websocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			logging.Log.WithField("user_id", client.userID).Debug("websocket client disconnected")
		}
	}
}

// SendToUser delivers an event to a single user's connection if one exists.
// Returns false when the user is not connected or their buffer is full.
func (h *Hub) SendToUser(userID uint, event *Event) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case client.send <- event:
		return true
	default:
		logging.Log.WithField("user_id", userID).Warn("websocket buffer full, dropping event")
		return false
	}
}
