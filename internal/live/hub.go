// internal/live/hub.go
// WebSocket hub pushing live standings to kiosk and judge displays.

package live

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active kiosk connections and broadcasts standing updates.
// Clients subscribe per group; a card commit for group G fans out to every
// display watching G.
type Hub struct {
	// Registered clients by group name
	groups map[string]map[*Client]bool

	// Register client
	register chan *Client

	// Unregister client
	unregister chan *Client

	// Broadcast messages to a group's subscribers
	broadcast chan *Message

	logger *log.Logger

	// Mutex for concurrent access
	mu sync.RWMutex
}

// Message represents a WebSocket message
type Message struct {
	Type  string      `json:"type"`
	Group string      `json:"group,omitempty"`
	Day   int         `json:"day,omitempty"`
	Data  interface{} `json:"data"`
}

// Message types pushed to displays.
const (
	MessageStandingsUpdated = "standings_updated"
	MessageRunCommitted     = "run_committed"
	MessageStartListUpdated = "start_list_updated"
)

// NewHub creates a new WebSocket hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		groups:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, group := range client.groups {
		if h.groups[group] == nil {
			h.groups[group] = make(map[*Client]bool)
		}
		h.groups[group][client] = true
	}

	h.logger.Printf("Display connected (groups: %v)", client.groups)
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeClient(client)
	client.close()

	h.logger.Printf("Display disconnected")
}

// removeClient removes client from all group registrations
func (h *Hub) removeClient(client *Client) {
	for _, group := range client.groups {
		if clients, exists := h.groups[group]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.groups, group)
			}
		}
	}
}

// broadcastMessage sends a message to the subscribers of its group
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("Failed to marshal message: %v", err)
		return
	}

	if message.Group == "" {
		return
	}
	if clients, exists := h.groups[message.Group]; exists {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.removeClient(client)
				client.close()
			}
		}
	}
}

// BroadcastGroupUpdate pushes an update to every display watching a group.
func (h *Hub) BroadcastGroupUpdate(group string, day int, updateType string, data interface{}) {
	message := &Message{
		Type:  updateType,
		Group: group,
		Day:   day,
		Data:  data,
	}
	h.broadcast <- message
}

// Subscribe subscribes a client to one group's updates.
func (h *Hub) Subscribe(client *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.groups = append(client.groups, group)

	if h.groups[group] == nil {
		h.groups[group] = make(map[*Client]bool)
	}
	h.groups[group][client] = true

	h.logger.Printf("Display subscribed to group %s", group)
}

// Unsubscribe removes a client's subscription to one group.
func (h *Hub) Unsubscribe(client *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, g := range client.groups {
		if g == group {
			client.groups = append(client.groups[:i], client.groups[i+1:]...)
			break
		}
	}

	if clients, exists := h.groups[group]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.groups, group)
		}
	}

	h.logger.Printf("Display unsubscribed from group %s", group)
}
