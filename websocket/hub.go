// Package websocket pushes toast notifications to a user's open dashboard tabs.
// file: websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go-student-dashboard/logger"
	"go-student-dashboard/services"
)

// broadcastBuffer bounds queued notifications while the hub is busy.
const broadcastBuffer = 64

// Notification is the JSON frame sent to clients.
type Notification struct {
	Action  string `json:"action"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type envelope struct {
	user    string
	payload []byte
}

// Hub tracks connections per user and fans notifications out to them.
type Hub struct {
	mu          sync.Mutex
	connections map[*Connection]bool
	closed      bool

	broadcast chan envelope
	done      chan struct{}
	upgrader  websocket.Upgrader
}

// NewHub creates a hub accepting upgrades from allowedOrigin (or from
// clients that send no Origin header).
func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan envelope, broadcastBuffer),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Run delivers queued notifications until ctx is cancelled, then closes every
// connection. Call it once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Notify queues a notification for every connection of user. It never blocks;
// when the queue is full the notification is dropped.
func (h *Hub) Notify(user, level, message string) {
	payload, err := json.Marshal(Notification{Action: "toast", Level: level, Message: message})
	if err != nil {
		logger.Error.Printf("[Notify] Error marshalling notification: %v", err)
		return
	}
	select {
	case h.broadcast <- envelope{user: user, payload: payload}:
	default:
		logger.Warn.Printf("[Notify] Broadcast queue full; dropping notification for user=%q", user)
	}
}

// Notifier adapts the hub to services.Notifier for one user.
func (h *Hub) Notifier(user string) services.Notifier {
	return services.NotifierFunc(func(message string) {
		h.Notify(user, "success", message)
	})
}

// ConnectionCount reports how many connections user has open.
func (h *Hub) ConnectionCount(user string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.connections {
		if c.user == user {
			n++
		}
	}
	return n
}

func (h *Hub) deliver(env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		if c.user != env.user {
			continue
		}
		select {
		case c.send <- env.payload:
		default:
			logger.Warn.Printf("Dropping notification for connection %v", c.conn.RemoteAddr())
		}
	}
}

// register adds c unless the hub has shut down.
func (h *Hub) register(c *Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.connections[c] = true
	logger.Debug.Printf("[register] user=%q now has %d connection(s)", c.user, len(h.connections))
	return true
}

// unregister removes c and closes its send channel exactly once.
func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
	logger.Info.Println("[Hub] Notification hub stopped")
}
