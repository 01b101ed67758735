package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Client is one websocket connection of one user. A user may hold several
// connections (phone and laptop) and each receives every event.
type Client struct {
	userID string
	connID string
	send   chan []byte
}

// Hub tracks connected websocket clients per user and implements Sink by
// writing events to every open connection of the target user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[string]*Client
	log     *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{clients: make(map[string]map[string]*Client), log: log}
}

// Register adds a connection for userID and returns the client handle the
// caller must pass to Unregister when the socket closes.
func (h *Hub) Register(userID string) *Client {
	c := &Client{userID: userID, connID: uuid.NewString(), send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[string]*Client)
	}
	h.clients[userID][c.connID] = c
	h.mu.Unlock()
	h.log.Infow("ws connected", "user", userID, "conn", c.connID)
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[c.userID]; ok {
		if _, ok := conns[c.connID]; ok {
			delete(conns, c.connID)
			close(c.send)
		}
		if len(conns) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()
	h.log.Infow("ws disconnected", "user", c.userID, "conn", c.connID)
}

// PushToUser marshals the event and queues it on every connection of the
// user. A connection whose buffer is full is skipped rather than blocking
// the caller.
func (h *Hub) PushToUser(userID string, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorw("marshaling event failed", "type", ev.Type, "error", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[userID] {
		select {
		case c.send <- b:
		default:
			h.log.Warnw("dropping event, client buffer full", "user", userID, "conn", c.connID)
		}
	}
}

// ConnectedUsers reports how many distinct users currently hold at least
// one connection.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WritePump drains the client's queue onto the socket and keeps it alive
// with pings. It returns when the queue is closed or a write fails; the
// caller owns closing the socket.
func (h *Hub) WritePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case b, ok := <-c.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}
