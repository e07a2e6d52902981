package model

import "time"

// GameID uniquely identifies an archived game
type GameID string

// GameSummary is the record of a finished game handed to the persistence sink
type GameSummary struct {
	ID          GameID        `json:"id" bson:"_id"`
	RoomID      RoomID        `json:"roomId" bson:"room_id"`
	RoomName    string        `json:"roomName" bson:"room_name"`
	Players     []PlayerScore `json:"players" bson:"players"`
	Rounds      []RoundRecord `json:"rounds" bson:"rounds"`
	WinnerID    PlayerID      `json:"winnerId,omitempty" bson:"winner_id,omitempty"`
	StartedAt   time.Time     `json:"startedAt" bson:"started_at"`
	CompletedAt time.Time     `json:"completedAt" bson:"completed_at"`
}

// PlayerScore is a player's final standing in a finished game
type PlayerScore struct {
	PlayerID    PlayerID `json:"playerId" bson:"player_id"`
	UserID      UserID   `json:"userId" bson:"user_id"`
	DisplayName string   `json:"displayName" bson:"display_name"`
	Score       int      `json:"score" bson:"score"`
}

// LeaderboardEntry is one row of the all-time leaderboard
type LeaderboardEntry struct {
	UserID      UserID
	DisplayName string
	Points      int
	Rank        int
}
