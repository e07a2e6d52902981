package gateway

import (
	"log/slog"
	"sync"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// RoomGroup is the broadcast group of everyone in a room
func RoomGroup(id model.RoomID) string {
	return "room:" + string(id)
}

// PlayerGroup is the private broadcast group of one player
func PlayerGroup(id model.PlayerID) string {
	return "player:" + string(id)
}

// Hub tracks live connections and the broadcast groups they subscribe to
type Hub struct {
	mu     sync.RWMutex
	conns  map[model.SocketID]*Conn
	groups map[string]map[model.SocketID]*Conn
	logger *slog.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[model.SocketID]*Conn),
		groups: make(map[string]map[model.SocketID]*Conn),
		logger: logger,
	}
}

// Add registers a connection for network-wide emits
func (h *Hub) Add(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

// Remove drops a connection from the hub and from every group
func (h *Hub) Remove(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, c.id)
	for name, members := range h.groups {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.groups, name)
		}
	}
}

// Subscribe adds the connection to a group
func (h *Hub) Subscribe(group string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		members = make(map[model.SocketID]*Conn)
		h.groups[group] = members
	}
	members[c.id] = c
}

// Unsubscribe removes the connection from a group
func (h *Hub) Unsubscribe(group string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.groups[group]; ok {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
}

// Emit sends an event to every member of a group
func (h *Hub) Emit(group string, eventType model.EventType, payload any) {
	h.EmitExcept(group, "", eventType, payload)
}

// EmitExcept sends an event to every member of a group but one
func (h *Hub) EmitExcept(group string, except model.SocketID, eventType model.EventType, payload any) {
	data, err := encode(eventType, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("type", string(eventType)),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.groups[group] {
		if id != except {
			c.enqueue(data)
		}
	}
}

// EmitAll sends an event to every live connection
func (h *Hub) EmitAll(eventType model.EventType, payload any) {
	data, err := encode(eventType, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("type", string(eventType)),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.conns {
		c.enqueue(data)
	}
}

func (h *Hub) groupSize(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Count returns the number of live connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every live connection
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
