package stream

import (
	"context"
	"sync"
)

const commandBufSize = 256

// Hub tracks connected renderers, fans frames out to them and funnels their
// commands to the simulation loop. Clients join and leave under mu.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]bool
	closed   bool
	commands chan Command
}

// NewHub creates an empty hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		commands: make(chan Command, commandBufSize),
	}
}

// Run blocks until ctx is done, then disconnects every client. Clients that
// connect afterwards are turned away.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// add registers a client. It returns false once the hub has shut down.
func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = true
	return true
}

// remove unregisters a client. Unknown or already removed clients are ignored.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast queues data for every client. Slow clients drop the frame.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
		}
	}
}

// Commands returns the channel of decoded client commands.
// Only the simulation loop should receive from it.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// submit queues a command, dropping it when the loop is behind.
func (h *Hub) submit(cmd Command) bool {
	select {
	case h.commands <- cmd:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
