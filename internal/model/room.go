package model

import (
	"sort"
	"time"
)

// RoomID is a short human-readable room identifier
type RoomID string

// RoomStatus represents where a room is in its game lifecycle
type RoomStatus string

const (
	RoomStatusLobby   RoomStatus = "lobby"   // No round in progress
	RoomStatusRunning RoomStatus = "running" // A round is in progress
	RoomStatusEnded   RoomStatus = "ended"   // All rounds consumed
)

// RoundOutcome records how a round finished
type RoundOutcome string

const (
	RoundOutcomeGuessed   RoundOutcome = "guessed"
	RoundOutcomeTimeout   RoundOutcome = "timeout"
	RoundOutcomeCancelled RoundOutcome = "cancelled"
)

// Round is one drawer/word cycle with a deadline
type Round struct {
	Number       int
	Word         string // secret, never sent to guessers
	RevealedMask string
	DrawerID     PlayerID
	StartedAt    time.Time
	EndsAt       time.Time
}

// RoundRecord is the archived trace of a finished round
type RoundRecord struct {
	Number     int          `json:"number"`
	DrawerID   PlayerID     `json:"drawerId"`
	Word       string       `json:"word"`
	WinnerID   PlayerID     `json:"winnerId,omitempty"`
	Outcome    RoundOutcome `json:"outcome"`
	DrawingRef string       `json:"drawingRef"`
	StartedAt  time.Time    `json:"startedAt"`
	EndedAt    time.Time    `json:"endedAt"`
}

// Room is a named, capacity-bounded container for players and at most one active round
type Room struct {
	ID                   RoomID
	Name                 string
	HostUserID           UserID
	MaxPlayers           int
	RoundDurationSeconds int
	TotalRounds          int
	RoundsPlayed         int
	Players              map[PlayerID]*Player
	Round                *Round // nil unless Status is running
	LastDrawerID         PlayerID
	History              []RoundRecord
	Status               RoomStatus
	CreatedAt            time.Time
	LastActivityAt       time.Time
}

// RoundDuration returns the configured round length
func (r *Room) RoundDuration() time.Duration {
	return time.Duration(r.RoundDurationSeconds) * time.Second
}

// ConnectedCount returns the number of players with a live socket
func (r *Room) ConnectedCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

// FindByUser returns the player entry owned by the given user, or nil
func (r *Room) FindByUser(userID UserID) *Player {
	for _, p := range r.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// SortedPlayers returns players ordered by join time, then id
func (r *Room) SortedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players
}

// IsDrawer reports whether the player is the drawer of the active round
func (r *Room) IsDrawer(playerID PlayerID) bool {
	return r.Round != nil && r.Round.DrawerID == playerID
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Players = make(map[PlayerID]*Player, len(r.Players))
	for id, p := range r.Players {
		cp := *p
		c.Players[id] = &cp
	}
	if r.Round != nil {
		round := *r.Round
		c.Round = &round
	}
	if r.History != nil {
		c.History = make([]RoundRecord, len(r.History))
		copy(c.History, r.History)
	}
	return &c
}
