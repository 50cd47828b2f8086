package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub tracks live connections and the room each session broadcasts to.
// Methods are synchronous so that broadcast order equals the order the
// session layer issued them in; delivery itself rides on each client's
// buffered send channel. Implements service.RoomBroadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client // roomID -> connID -> client
	logger  *zap.Logger
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[c.id]; !ok || existing != c {
		return
	}
	delete(h.clients, c.id)
	for roomID, members := range h.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	close(c.send)
}

// JoinRoom adds a connection to a session's broadcast group
func (h *Hub) JoinRoom(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][connID] = c
}

// LeaveRoom removes a connection from a session's broadcast group
func (h *Hub) LeaveRoom(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// EmitTo sends an event to a single connection. Delivery to a gone or
// saturated connection is silently dropped.
func (h *Hub) EmitTo(connID, event string, payload interface{}) {
	data, err := encodeMessage(event, 0, payload)
	if err != nil {
		h.logger.Error("encode emit failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		// Drop if the client's buffer is full
	}
}

// BroadcastToRoom sends an event to every room member except the
// excluded connection (the sender, for echo suppression)
func (h *Hub) BroadcastToRoom(roomID, excludeConnID, event string, payload interface{}) {
	data, err := encodeMessage(event, 0, payload)
	if err != nil {
		h.logger.Error("encode broadcast failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, c := range h.rooms[roomID] {
		if connID == excludeConnID {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}
