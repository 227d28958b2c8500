package realtime

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Event is the frame pushed to clients: the template key as the event name
// plus the notification payload.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub tracks open websocket connections by socket id. Writes to a single
// connection are serialized through its mutex since gorilla allows only one
// concurrent writer.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*connection
	log   zerolog.Logger
}

type connection struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[string]*connection),
		log:   log,
	}
}

// Register assigns a fresh socket id to a connection and starts tracking it.
func (h *Hub) Register(conn *websocket.Conn) string {
	socketID := uuid.NewString()
	h.mu.Lock()
	h.conns[socketID] = &connection{conn: conn}
	h.mu.Unlock()
	h.log.Debug().Str("socket_id", socketID).Msg("socket connected")
	return socketID
}

// Unregister drops a connection; no-op for unknown ids.
func (h *Hub) Unregister(socketID string) {
	h.mu.Lock()
	c, ok := h.conns[socketID]
	delete(h.conns, socketID)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
		h.log.Debug().Str("socket_id", socketID).Msg("socket disconnected")
	}
}

// Send pushes a JSON event to one socket. An unknown socket id means the
// presence entry went stale; callers treat the error as non-fatal.
func (h *Hub) Send(socketID string, event string, payload interface{}) error {
	h.mu.RLock()
	c, ok := h.conns[socketID]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no open socket %s", socketID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Event{Event: event, Payload: payload})
}
