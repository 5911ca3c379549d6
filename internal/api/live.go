package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/service"
)

const (
	liveBuffer   = 64
	writeTimeout = 5 * time.Second
)

type liveClient struct {
	conn *websocket.Conn
	send chan service.BattleEvent
}

// Hub fans tournament battle events out to websocket subscribers. A client
// that cannot keep up loses events rather than slowing the tournament.
type Hub struct {
	mu       sync.Mutex
	clients  map[*liveClient]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*liveClient]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Publish implements service.Publisher.
func (h *Hub) Publish(ev service.BattleEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(c *liveClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *liveClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ServeLive upgrades the request to a websocket and streams one JSON
// message per stored tournament battle until the client disconnects.
func (h *Hub) ServeLive(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("live upgrade failed", err, logging.Fields{constants.LogFieldAddr: c.ClientIP()})
		return
	}
	client := &liveClient{conn: conn, send: make(chan service.BattleEvent, liveBuffer)}
	h.add(client)
	go client.writeLoop()
	// Incoming messages are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(client)
}

func (c *liveClient) writeLoop() {
	defer c.conn.Close()
	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
}
