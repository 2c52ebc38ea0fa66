// Package stream pushes simulator price moves to WebSocket clients.
package stream

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stocktrade-simulator/internal/market"
	"github.com/stocktrade-simulator/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Message is the frame sent to clients
type Message struct {
	Type string             `json:"type"`
	Data market.PriceUpdate `json:"data"`
}

// Hub fans price updates out to connected clients.
// A client that cannot keep up is dropped rather than slowing the simulator.
type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[*Client]bool
	broadcast  chan market.PriceUpdate
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu    sync.RWMutex
	count int
}

// Client is one WebSocket subscriber
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	symbols map[string]bool
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients:    make(map[*Client]bool),
		broadcast:  make(chan market.PriceUpdate, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))
			log.Printf("[PriceStream] client connected, total clients: %d", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount(len(h.clients))
				log.Printf("[PriceStream] client disconnected, total clients: %d", len(h.clients))
			}

		case update := <-h.broadcast:
			message, err := json.Marshal(Message{Type: "price", Data: update})
			if err != nil {
				log.Printf("[PriceStream] failed to encode update for %s: %v", update.Symbol, err)
				continue
			}
			for client := range h.clients {
				if !client.wants(update.Symbol) {
					continue
				}
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
					h.setCount(len(h.clients))
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(0)
			return
		}
	}
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
	metrics.WebSocketClients.Set(float64(n))
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// OnPriceUpdate implements market.PriceSubscriber. It never blocks;
// updates are dropped when the hub is saturated.
func (h *Hub) OnPriceUpdate(update market.PriceUpdate) {
	select {
	case h.broadcast <- update:
	default:
	}
}

// ServeWS upgrades the request and streams updates to it.
// An optional symbols query parameter (comma separated) limits the stream.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[PriceStream] upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		symbols: parseSymbols(r.URL.Query().Get("symbols")),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func parseSymbols(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	symbols := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols[s] = true
		}
	}
	return symbols
}

func (c *Client) wants(symbol string) bool {
	return len(c.symbols) == 0 || c.symbols[symbol]
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[PriceStream] read error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
