package ws

import (
	"context"
	"sync/atomic"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/services"
)

// Message - то, что уходит клиенту по сокету.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type delivery struct {
	recipients []string
	message    Message
}

// Hub держит подключения по user id. Карта клиентов принадлежит
// только горутине Run, остальные общаются с ней через каналы.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

var _ services.EventPublisher = (*Hub)(nil)

// Run обслуживает hub до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			h.count.Store(0)
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.count.Add(1)
			logger.Debug("WebSocket client registered", "user_id", c.userID, "total", h.count.Load())

		case c := <-h.unregister:
			h.remove(c)

		case d := <-h.deliver:
			for _, userID := range d.recipients {
				for c := range h.clients[userID] {
					select {
					case c.send <- d.message:
					default:
						// Медленный клиент отключается.
						logger.Warn("WebSocket send buffer full, dropping client", "user_id", c.userID)
						h.remove(c)
					}
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	h.count.Add(-1)
	logger.Debug("WebSocket client unregistered", "user_id", c.userID, "total", h.count.Load())
}

// Publish ставит событие в очередь и никогда не блокирует вызывающего.
func (h *Hub) Publish(ctx context.Context, event services.Event) {
	if len(event.Recipients) == 0 {
		return
	}
	d := delivery{
		recipients: event.Recipients,
		message:    Message{Type: event.Type, Payload: event.Payload},
	}
	select {
	case h.deliver <- d:
	default:
		logger.CtxWarn(ctx, "WebSocket hub queue full, event dropped", "type", event.Type)
	}
}

// ClientCount - число открытых подключений.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
