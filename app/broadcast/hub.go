// Package broadcast holds the real-time fan-out registry. Connected clients
// receive best-effort JSON events; there is no persistence or replay for
// clients that connect after an event fired.
package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"
)

// Envelope is the wire shape of every event: {"event": name, "data": {...}}.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is an explicit connection registry. It is created once at startup and
// handed to whoever needs to publish; there is no package-level singleton.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		c.close()
		return
	}
	h.clients[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// ClientCount reports how many subscribers are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the event to every connected client. Sends never block the
// publisher: a client whose buffer is full is dropped from the registry.
func (h *Hub) Broadcast(event string, data any) error {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			zlog.Warn().Str("event", event).Msg("dropping slow broadcast subscriber")
			delete(h.clients, c)
			c.close()
		}
	}
	return nil
}

// Close disconnects every client and rejects further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

const sendBufferSize = 16

// Client wraps one websocket connection registered with the hub.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn, send: make(chan []byte, sendBufferSize)}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// WritePump drains the send buffer onto the connection. It returns when the
// hub closes the client or the connection fails.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump consumes (and discards) inbound frames so pings and close frames
// are processed, unregistering the client when the connection drops.
func (c *Client) ReadPump(h *Hub) {
	defer h.Unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
