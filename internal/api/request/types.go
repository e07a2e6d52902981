package request

// CreateRoomRequest is the request body for creating a room.
// A zero total_rounds falls back to the server default.
type CreateRoomRequest struct {
	Name          string `json:"name"`
	MaxPlayers    int    `json:"max_players"`
	RoundDuration int    `json:"round_duration"`
	TotalRounds   int    `json:"total_rounds,omitempty"`
}
