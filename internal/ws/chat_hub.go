package ws

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Send   chan []byte
	room   *room
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.room != nil {
		c.room.leave(c)
	}
}

// room is one persona-character conversation with its connected clients.
type room struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func (r *room) join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
	c.room = r
}

func (r *room) leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *room) broadcast(data []byte) {
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// ChatHub holds all live conversation rooms keyed by persona-character pair.
type ChatHub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewChatHub() *ChatHub {
	return &ChatHub{rooms: make(map[string]*room)}
}

func roomKey(personaID, characterID uint) string {
	return fmt.Sprintf("%d:%d", personaID, characterID)
}

// Join registers a client in the pair's room, creating it when needed.
func (h *ChatHub) Join(personaID, characterID uint, c *Client) {
	key := roomKey(personaID, characterID)
	h.mu.Lock()
	r, ok := h.rooms[key]
	if !ok {
		r = &room{clients: make(map[*Client]struct{})}
		h.rooms[key] = r
	}
	h.mu.Unlock()
	r.join(c)
}

// Publish pushes a payload (e.g. the stored character reply) to every client
// connected to the pair's room.
func (h *ChatHub) Publish(personaID, characterID uint, payload interface{}) {
	h.mu.RLock()
	r := h.rooms[roomKey(personaID, characterID)]
	h.mu.RUnlock()
	if r == nil {
		return
	}
	data, _ := json.Marshal(payload)
	r.broadcast(data)
}
