package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one open view's connection. All outgoing frames go
// through send/Ping so writes stay serialized; gorilla/websocket
// allows at most one concurrent writer per connection.
type WSClient struct {
	UserID uint

	mu   sync.Mutex // guards writes to conn
	conn *websocket.Conn
}

func NewWSClient(userID uint, conn *websocket.Conn) *WSClient {
	return &WSClient{UserID: userID, conn: conn}
}

func (c *WSClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Ping sends a keepalive frame so proxies don't drop idle sockets.
func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// WaitClosed blocks until the peer closes the socket or the read
// fails. Incoming frames carry no meaning here and are discarded.
func (c *WSClient) WaitClosed() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// RealtimeHub fans data-change events out to every open view a user
// has connected. Sibling views use these to know their meal lists are
// stale; the payload carries no data, consumers just re-fetch.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// NotifyMealsChanged pushes the stale-data marker to every open view
// of one user after a meal create or update.
func (h *RealtimeHub) NotifyMealsChanged(userID uint) {
	h.Broadcast(userID, map[string]string{"kind": "meals.changed"})
}

// Broadcast sends payload to all of one user's connections. Clients
// whose socket write fails are dropped from the hub. The client set is
// snapshot first so a failed send never calls Unregister while the hub
// lock is held.
func (h *RealtimeHub) Broadcast(userID uint, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(msg); err != nil {
			h.Unregister(c)
		}
	}
}
