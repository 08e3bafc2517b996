package server

import (
	"context"
	"log"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single websocket write
const writeWait = 2 * time.Second

// Message is the websocket envelope for events and snapshots
type Message struct {
	Type    string `json:"type"`
	Frame   int64  `json:"frame"`
	Payload any    `json:"payload"`
}

// Hub fans messages out to every connected websocket client
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte

	mu      sync.RWMutex
	writeMu map[*websocket.Conn]*sync.Mutex // Per-conn write locks
}

// NewHub creates an idle hub; call Run to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 256),
		writeMu:    make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
			}
			h.clients = make(map[*websocket.Conn]bool)
			h.writeMu = make(map[*websocket.Conn]*sync.Mutex)
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.writeMu[conn] = &sync.Mutex{}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				delete(h.writeMu, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			var failed []*websocket.Conn
			h.mu.RLock()
			for conn := range h.clients {
				if err := h.writeLocked(conn, data); err != nil {
					log.Printf("[WARN] websocket broadcast: %v", err)
					failed = append(failed, conn)
				}
			}
			h.mu.RUnlock()

			if len(failed) > 0 {
				h.mu.Lock()
				for _, conn := range failed {
					delete(h.clients, conn)
					delete(h.writeMu, conn)
					conn.Close()
				}
				h.mu.Unlock()
			}
		}
	}
}

// writeLocked writes under the connection's lock; caller holds h.mu for reading
func (h *Hub) writeLocked(conn *websocket.Conn, data []byte) error {
	mu, ok := h.writeMu[conn]
	if !ok {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Send writes one message to a single registered client
func (h *Hub) Send(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.writeLocked(conn, data)
}

// Register adds a connection
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister removes and closes a connection
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish encodes and queues a message for every client
// Never blocks: messages are dropped when the broadcast buffer is full
func (h *Hub) Publish(kind string, frame int64, payload any) {
	data, err := json.Marshal(Message{Type: kind, Frame: frame, Payload: payload})
	if err != nil {
		log.Printf("[WARN] websocket encode %s: %v", kind, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}
