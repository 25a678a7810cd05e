// Package notify streams order lifecycle events to connected admin
// consoles over WebSocket.
package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// OrderEvent is what subscribers receive.
type OrderEvent struct {
	Action    string    `json:"action"` // "created" or "status"
	OrderID   string    `json:"orderid"`
	Status    string    `json:"status"`
	TotalPaid int64     `json:"totalPaid"`
	At        time.Time `json:"at"`
}

type Client struct {
	Send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// slow subscriber, drop it
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// drop unregisters a client. Safe to call after Stop: once the run
// loop has exited nobody receives on unregister, so fall through on
// done instead of blocking the connection goroutine forever.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish fans an event out to every subscriber. Never blocks the
// caller.
func (h *Hub) Publish(ev OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("notify marshal error:", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Println("notify broadcast buffer full, dropping event")
	}
}

// Default is the hub wired into the order flow; main runs it.
var Default = NewHub()

// PublishOrderEvent publishes on the default hub.
func PublishOrderEvent(action, orderID, status string, totalPaid int64) {
	Default.Publish(OrderEvent{
		Action:    action,
		OrderID:   orderID,
		Status:    status,
		TotalPaid: totalPaid,
		At:        time.Now(),
	})
}
