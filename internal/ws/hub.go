package ws

import (
	"encoding/json"

	"taskdeck/internal/logger"
)

type userEvent struct {
	userID  int64
	payload []byte
}

// Hub fans change events out to every open connection of the affected
// user. All client bookkeeping happens on the Run goroutine; there is no
// shared map access from handlers.
type Hub struct {
	clients    map[int64]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan userEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			conns, ok := h.clients[c.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[c.userID] = conns
			}
			conns[c] = true

		case c := <-h.unregister:
			if conns, ok := h.clients[c.userID]; ok {
				if conns[c] {
					delete(conns, c)
					close(c.send)
					if len(conns) == 0 {
						delete(h.clients, c.userID)
					}
				}
			}

		case ev := <-h.events:
			for c := range h.clients[ev.userID] {
				select {
				case c.send <- ev.payload:
				default:
					// slow consumer, drop the connection
					delete(h.clients[ev.userID], c)
					close(c.send)
				}
			}
		}
	}
}

// Publish queues an event for the user's connections. Delivery is
// best-effort; a full hub queue drops the event rather than blocking the
// mutating request.
func (h *Hub) Publish(userID int64, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal ws event", "error", err)
		return
	}
	select {
	case h.events <- userEvent{userID: userID, payload: payload}:
	default:
		logger.Warn("ws event queue full, dropping event", "type", ev.Type)
	}
}
