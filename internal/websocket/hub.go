package websocket

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and broadcasts messages to them.
// Every connected client receives every event; there is no replay buffer, so
// a client connected after a publish never sees that event.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Connected-client count, maintained by the Run loop.
	count atomic.Int64
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.count.Store(int64(len(h.clients)))
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Client can't keep up; drop it rather than block the hub.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// ClientCount reports the number of currently connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish marshals an event envelope and hands it to the broadcast loop.
// Delivery is fire-and-forget: no acknowledgment is awaited from clients.
func (h *Hub) Publish(event string, data interface{}) {
	message, err := NewMessage(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Failed to encode broadcast message")
		return
	}
	h.Broadcast <- message
}
