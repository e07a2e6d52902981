package model

import "time"

// UserID identifies an account as reported by the identity verifier
type UserID string

// PlayerID identifies a player within a single room
type PlayerID string

// SocketID identifies one live connection
type SocketID string

// Player is a room-scoped participant, distinct from the account behind it
type Player struct {
	ID          PlayerID  `json:"id"`
	UserID      UserID    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Score       int       `json:"score"`
	IsDrawing   bool      `json:"isDrawing"`
	Connected   bool      `json:"connected"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Identity is a verified account as returned by the identity verifier
type Identity struct {
	UserID      UserID
	DisplayName string
}

// Presence describes where a user currently sits, for read-only consumers such as the friends list
type Presence struct {
	UserID    UserID
	RoomID    RoomID
	RoomName  string
	PlayerID  PlayerID
	Connected bool
	Status    RoomStatus
}
