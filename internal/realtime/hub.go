// Package realtime implements the websocket fan-out transport: one logical
// room per user id, fire-and-forget emit.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// Event is the wire envelope pushed to connected clients.
type Event struct {
	Name      string      `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// messageWriter is the slice of the websocket connection the hub writes to.
type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// session serializes writes to one connection. The websocket transport
// forbids concurrent writers; without the mutex two overlapping emits to
// the same target panic the process.
type session struct {
	mu   sync.Mutex
	conn messageWriter
}

func (s *session) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// Hub tracks open connections keyed by user id. A user may hold several
// connections (phone + tablet); every one receives the emit.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*websocket.Conn]*session
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*websocket.Conn]*session),
	}
}

// Register adds a connection to the user's room.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*websocket.Conn]*session)
	}
	h.rooms[userID][conn] = &session{conn: conn}
}

// Unregister drops a connection; the room is removed when empty.
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// Emit delivers an event to every connection in the target's room.
// Best-effort: a dead connection is logged and skipped, never retried.
func (h *Hub) Emit(targetID uint, eventName string, payload interface{}) {
	data, err := json.Marshal(Event{
		Name:      eventName,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", eventName, err)
		return
	}

	h.mu.RLock()
	sessions := make([]*session, 0, len(h.rooms[targetID]))
	for _, sess := range h.rooms[targetID] {
		sessions = append(sessions, sess)
	}
	h.mu.RUnlock()

	for _, sess := range sessions {
		if err := sess.write(websocket.TextMessage, data); err != nil {
			log.Printf("realtime: emit to user %d failed: %v", targetID, err)
		}
	}
}

// ConnectionCount reports how many connections a user currently holds.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
