package watch

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans slot updates out to facility watchers. Delivery is fire-and-forget:
// a failed write just drops the connection.
type Hub struct {
	mutex       sync.RWMutex
	connections map[int64]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(facilityID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[facilityID] == nil {
		h.connections[facilityID] = make(map[*websocket.Conn]struct{})
	}
	h.connections[facilityID][conn] = struct{}{}
}

func (h *Hub) Unregister(facilityID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.connections[facilityID]; exists {
		if _, ok := conns[conn]; ok {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, facilityID)
		}
	}
}

// Broadcast sends message to every watcher of the facility and returns how
// many received it. Dead connections are dropped along the way.
func (h *Hub) Broadcast(facilityID int64, message interface{}) int {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections[facilityID]))
	for conn := range h.connections[facilityID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	sent := 0
	for _, conn := range conns {
		if err := conn.WriteJSON(message); err != nil {
			h.Unregister(facilityID, conn)
			continue
		}
		sent++
	}
	return sent
}

func (h *Hub) WatcherCount(facilityID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[facilityID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for facilityID, conns := range h.connections {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.connections, facilityID)
	}
}
