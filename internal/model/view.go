package model

// RoomView is the client-facing projection of a room. It never carries the secret word.
type RoomView struct {
	ID            RoomID       `json:"id"`
	Name          string       `json:"name"`
	HostUserID    UserID       `json:"hostUserId"`
	MaxPlayers    int          `json:"maxPlayers"`
	RoundDuration int          `json:"roundDuration"`
	TotalRounds   int          `json:"totalRounds"`
	RoundsPlayed  int          `json:"roundsPlayed"`
	Status        RoomStatus   `json:"status"`
	Players       []PlayerView `json:"players"`
	Round         *RoundView   `json:"round,omitempty"`
}

// PlayerView is the client-facing projection of a player
type PlayerView struct {
	ID          PlayerID `json:"id"`
	DisplayName string   `json:"displayName"`
	Score       int      `json:"score"`
	IsDrawing   bool     `json:"isDrawing"`
	Connected   bool     `json:"connected"`
}

// RoundView is the public part of a round
type RoundView struct {
	Number      int      `json:"number"`
	DrawerID    PlayerID `json:"drawerId"`
	Revealed    string   `json:"revealed"`
	RoundEndsAt int64    `json:"roundEndsAt"`
}

// RoomSummaryView is one row of the room list
type RoomSummaryView struct {
	ID          RoomID     `json:"id"`
	Name        string     `json:"name"`
	PlayerCount int        `json:"playerCount"`
	MaxPlayers  int        `json:"maxPlayers"`
	Status      RoomStatus `json:"status"`
}

// NewRoomView projects a room for broadcast
func NewRoomView(r *Room) RoomView {
	players := r.SortedPlayers()
	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = PlayerView{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			IsDrawing:   p.IsDrawing,
			Connected:   p.Connected,
		}
	}

	var round *RoundView
	if r.Round != nil {
		round = &RoundView{
			Number:      r.Round.Number,
			DrawerID:    r.Round.DrawerID,
			Revealed:    r.Round.RevealedMask,
			RoundEndsAt: r.Round.EndsAt.UnixMilli(),
		}
	}

	return RoomView{
		ID:            r.ID,
		Name:          r.Name,
		HostUserID:    r.HostUserID,
		MaxPlayers:    r.MaxPlayers,
		RoundDuration: r.RoundDurationSeconds,
		TotalRounds:   r.TotalRounds,
		RoundsPlayed:  r.RoundsPlayed,
		Status:        r.Status,
		Players:       views,
		Round:         round,
	}
}

// NewRoomSummaryView projects a room for the room list
func NewRoomSummaryView(r *Room) RoomSummaryView {
	return RoomSummaryView{
		ID:          r.ID,
		Name:        r.Name,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		Status:      r.Status,
	}
}
