package response

import (
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Player represents a room player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	IsDrawing   bool   `json:"is_drawing"`
	Connected   bool   `json:"connected"`
}

// Round is the public part of an active round. The secret word is never included.
type Round struct {
	Number   int       `json:"number"`
	DrawerID string    `json:"drawer_id"`
	Revealed string    `json:"revealed"`
	EndsAt   time.Time `json:"ends_at"`
}

// Room represents a room in API responses
type Room struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	HostUserID    string   `json:"host_user_id"`
	MaxPlayers    int      `json:"max_players"`
	RoundDuration int      `json:"round_duration"`
	TotalRounds   int      `json:"total_rounds"`
	RoundsPlayed  int      `json:"rounds_played"`
	Status        string   `json:"status"`
	Players       []Player `json:"players"`
	Round         *Round   `json:"round"`
}

// RoomFromModel converts model.Room, in join order
func RoomFromModel(r *model.Room) Room {
	sorted := r.SortedPlayers()
	players := make([]Player, len(sorted))
	for i, p := range sorted {
		players[i] = Player{
			ID:          string(p.ID),
			DisplayName: p.DisplayName,
			Score:       p.Score,
			IsDrawing:   p.IsDrawing,
			Connected:   p.Connected,
		}
	}

	var round *Round
	if r.Round != nil {
		round = &Round{
			Number:   r.Round.Number,
			DrawerID: string(r.Round.DrawerID),
			Revealed: r.Round.RevealedMask,
			EndsAt:   r.Round.EndsAt,
		}
	}

	return Room{
		ID:            string(r.ID),
		Name:          r.Name,
		HostUserID:    string(r.HostUserID),
		MaxPlayers:    r.MaxPlayers,
		RoundDuration: r.RoundDurationSeconds,
		TotalRounds:   r.TotalRounds,
		RoundsPlayed:  r.RoundsPlayed,
		Status:        string(r.Status),
		Players:       players,
		Round:         round,
	}
}

// RoomSummary is one row of the room list
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Status      string `json:"status"`
}

// RoomSummaryFromModel converts model.Room
func RoomSummaryFromModel(r *model.Room) RoomSummary {
	return RoomSummary{
		ID:          string(r.ID),
		Name:        r.Name,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		Status:      string(r.Status),
	}
}

// RoomList wraps the room list
type RoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// PlayerScore is a final standing
type PlayerScore struct {
	PlayerID    string `json:"player_id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// RoundRecord is one finished round of an archived game
type RoundRecord struct {
	Number     int       `json:"number"`
	DrawerID   string    `json:"drawer_id"`
	Word       string    `json:"word"`
	WinnerID   *string   `json:"winner_id"`
	Outcome    string    `json:"outcome"`
	DrawingRef string    `json:"drawing_ref"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID          string        `json:"id"`
	RoomID      string        `json:"room_id"`
	RoomName    string        `json:"room_name"`
	Players     []PlayerScore `json:"players"`
	Rounds      []RoundRecord `json:"rounds,omitempty"`
	Winner      *string       `json:"winner"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary. Rounds are only included when withRounds is set.
func GameSummaryFromModel(g *model.GameSummary, withRounds bool) GameSummary {
	players := make([]PlayerScore, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerScore{
			PlayerID:    string(p.PlayerID),
			UserID:      string(p.UserID),
			DisplayName: p.DisplayName,
			Score:       p.Score,
		}
	}

	var rounds []RoundRecord
	if withRounds {
		rounds = make([]RoundRecord, len(g.Rounds))
		for i, r := range g.Rounds {
			rounds[i] = RoundRecord{
				Number:     r.Number,
				DrawerID:   string(r.DrawerID),
				Word:       r.Word,
				WinnerID:   optional(string(r.WinnerID)),
				Outcome:    string(r.Outcome),
				DrawingRef: r.DrawingRef,
				StartedAt:  r.StartedAt,
				EndedAt:    r.EndedAt,
			}
		}
	}

	return GameSummary{
		ID:          string(g.ID),
		RoomID:      string(g.RoomID),
		RoomName:    g.RoomName,
		Players:     players,
		Rounds:      rounds,
		Winner:      optional(string(g.WinnerID)),
		StartedAt:   g.StartedAt,
		CompletedAt: g.CompletedAt,
	}
}

// GameList wraps a list of archived games
type GameList struct {
	Games []GameSummary `json:"games"`
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
}

// Leaderboard wraps the ranked rows
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts leaderboard rows
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:        e.Rank,
			UserID:      string(e.UserID),
			DisplayName: e.DisplayName,
			Points:      e.Points,
		}
	}
	return Leaderboard{Entries: out}
}

// Presence is one room a user currently sits in
type Presence struct {
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	PlayerID  string `json:"player_id"`
	Connected bool   `json:"connected"`
	Status    string `json:"status"`
}

// PresenceList is where a user can be found right now
type PresenceList struct {
	UserID string     `json:"user_id"`
	Online bool       `json:"online"`
	Rooms  []Presence `json:"rooms"`
}

// PresenceFromModel converts the presence rows of one user
func PresenceFromModel(userID model.UserID, rows []model.Presence) PresenceList {
	out := PresenceList{UserID: string(userID), Rooms: make([]Presence, len(rows))}
	for i, p := range rows {
		out.Rooms[i] = Presence{
			RoomID:    string(p.RoomID),
			RoomName:  p.RoomName,
			PlayerID:  string(p.PlayerID),
			Connected: p.Connected,
			Status:    string(p.Status),
		}
		if p.Connected {
			out.Online = true
		}
	}
	return out
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Rooms   int    `json:"rooms"`
	Sockets int    `json:"sockets"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
