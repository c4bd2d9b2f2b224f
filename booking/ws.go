package booking

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"oasis/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub keeps the websocket viewers of each cabin page and pushes availability changes to them.
type Hub struct {
	upgrader    websocket.Upgrader
	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// CORS is enforced on the API; viewers only ever receive data here
				return true
			},
		},
		subscribers: make(map[string][]*websocket.Conn),
	}
}

// HandleWS handles GET /ws/cabins/:cabinId
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cabinID := ps.ByName("cabinId")
	if cabinID == "" {
		http.Error(w, "cabinId required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.subscribers[cabinID] = append(h.subscribers[cabinID], conn)
	h.mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(cabinID, conn)
	conn.Close()
}

func (h *Hub) remove(cabinID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.subscribers[cabinID]
	kept := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		delete(h.subscribers, cabinID)
		return
	}
	h.subscribers[cabinID] = kept
}

// Deliver sends the event to everyone watching its cabin. Dead connections are dropped.
func (h *Hub) Deliver(event mq.BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] marshal event: %v", err)
		return
	}

	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.subscribers[event.CabinID]...)
	h.mu.Unlock()
	if len(conns) == 0 {
		return
	}

	// Writes happen outside the lock so a slow viewer cannot hold up subscribes.
	// Deliver is only called from the booking worker, one event at a time.
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(event.CabinID, conn)
			conn.Close()
		}
	}
}

// Subscribers counts the open connections for a cabin.
func (h *Hub) Subscribers(cabinID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[cabinID])
}

// Stop closes every connection.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conns := range h.subscribers {
		for _, c := range conns {
			c.Close()
		}
		delete(h.subscribers, id)
	}
}
