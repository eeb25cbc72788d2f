package server

import (
	"encoding/json"
	"sync"

	"golang.org/x/net/websocket"
)

// Hub tracks live websocket connections and broadcasts reload events to
// them, so clients can drop their local translation state when bundles
// change on the server.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{connections: make(map[*websocket.Conn]bool)}
}

func (h *Hub) join(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = true
}

func (h *Hub) leave(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn)
}

// Broadcast sends the event to every connected client.
func (h *Hub) Broadcast(event any) error {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	for _, conn := range conns {
		_, _ = conn.Write(b)
	}
	return nil
}

// handler keeps the connection open until the client goes away.
func (h *Hub) handler() websocket.Handler {
	return websocket.Handler(func(ws *websocket.Conn) {
		h.join(ws)
		defer h.leave(ws)

		// Block until the client closes; we only push, never read payloads.
		var buf [64]byte
		for {
			if _, err := ws.Read(buf[:]); err != nil {
				return
			}
		}
	})
}

// ReloadEvent is pushed to live clients when the translation cache clears.
type ReloadEvent struct {
	Event string `json:"event"`
}

// NotifyReload broadcasts a reload event.
func (h *Hub) NotifyReload() {
	_ = h.Broadcast(ReloadEvent{Event: "reload"})
}
