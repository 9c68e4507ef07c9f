package spectate

import (
	"context"
	"log/slog"
	"sync"
)

// Hub maintains the set of connected spectators and fans messages out to
// them.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// welcome is queued for every client as it registers.
	welcome []byte
	done    chan struct{}
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.Clients {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			if h.welcome != nil {
				client.Send <- h.welcome
			}
			h.mu.Unlock()
			h.log.Info("spectator connected", "client", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.log.Info("spectator disconnected", "client", client.ID)
		}
	}
}

// SetWelcome replaces the message new clients receive first and sends it
// to the current ones.
func (h *Hub) SetWelcome(data []byte) {
	h.mu.Lock()
	h.welcome = data
	h.mu.Unlock()
	h.Broadcast(data)
}

// Broadcast sends data to every client without blocking. Clients with a
// full buffer miss the message.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			h.log.Debug("broadcast: client send buffer full", "client", client.ID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
