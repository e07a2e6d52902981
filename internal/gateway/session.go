package gateway

import (
	"sync"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Session binds one socket to an authenticated user and, after a join, to one room and player
type Session struct {
	SocketID    model.SocketID
	UserID      model.UserID
	DisplayName string
	RoomID      model.RoomID   // empty until joined
	PlayerID    model.PlayerID // empty until joined
}

// Bound reports whether the session has joined a room
func (s Session) Bound() bool {
	return s.RoomID != ""
}

// Sessions is the connection session table, keyed by socket id
type Sessions struct {
	mu       sync.RWMutex
	bySocket map[model.SocketID]*Session
}

// NewSessions creates an empty session table
func NewSessions() *Sessions {
	return &Sessions{bySocket: make(map[model.SocketID]*Session)}
}

// Register creates the session for a freshly authenticated socket
func (s *Sessions) Register(socketID model.SocketID, identity model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySocket[socketID] = &Session{
		SocketID:    socketID,
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
	}
}

// Get returns a copy of the socket's session
func (s *Sessions) Get(socketID model.SocketID) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.bySocket[socketID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Bind records the room and player the socket joined
func (s *Sessions) Bind(socketID model.SocketID, roomID model.RoomID, playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.bySocket[socketID]; ok {
		sess.RoomID = roomID
		sess.PlayerID = playerID
	}
}

// Unbind clears the socket's room binding
func (s *Sessions) Unbind(socketID model.SocketID) {
	s.Bind(socketID, "", "")
}

// Remove deletes the session and returns its last state
func (s *Sessions) Remove(socketID model.SocketID) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.bySocket[socketID]
	if !ok {
		return Session{}, false
	}
	delete(s.bySocket, socketID)
	return *sess, true
}

// BoundElsewhere reports whether another socket is bound to the same player
func (s *Sessions) BoundElsewhere(roomID model.RoomID, playerID model.PlayerID, except model.SocketID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, sess := range s.bySocket {
		if id != except && sess.RoomID == roomID && sess.PlayerID == playerID {
			return true
		}
	}
	return false
}

// UnbindRoom clears every session bound to the room and returns their socket ids
func (s *Sessions) UnbindRoom(roomID model.RoomID) []model.SocketID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []model.SocketID
	for id, sess := range s.bySocket {
		if sess.RoomID == roomID {
			sess.RoomID = ""
			sess.PlayerID = ""
			ids = append(ids, id)
		}
	}
	return ids
}

// Count returns the number of registered sessions
func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySocket)
}
