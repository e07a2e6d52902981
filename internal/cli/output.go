package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Printf("Status: %s\n", v.Status)
		fmt.Printf("Rooms: %d\n", v.Rooms)
		fmt.Printf("Sockets: %d\n", v.Sockets)
	case response.RoomList:
		o.printRoomList(v)
	case response.Room:
		o.printRoom(v)
	case response.GameList:
		o.printGameList(v)
	case response.GameSummary:
		o.printGame(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case response.PresenceList:
		o.printPresence(v)
	case TokenResult:
		fmt.Printf("User: %s\n", v.UserID)
		fmt.Printf("Expires: %s\n", v.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("Token: %s\n", v.Token)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRoomList(l response.RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	for _, r := range l.Rooms {
		fmt.Printf("%s  %-24s %d/%d  %s\n", r.ID, r.Name, r.PlayerCount, r.MaxPlayers, r.Status)
	}
}

func (o *Output) printRoom(r response.Room) {
	fmt.Printf("Room: %s (%s)\n", r.Name, r.ID)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Host: %s\n", r.HostUserID)
	fmt.Printf("Rounds: %d of %d, %ds each\n", r.RoundsPlayed, r.TotalRounds, r.RoundDuration)

	if r.Round != nil {
		fmt.Printf("Round %d: %s (drawer %s, ends %s)\n",
			r.Round.Number, r.Round.Revealed, r.Round.DrawerID, r.Round.EndsAt.Format("15:04:05"))
	}

	fmt.Printf("Players (%d/%d):\n", len(r.Players), r.MaxPlayers)
	for _, p := range r.Players {
		var tags []string
		if p.IsDrawing {
			tags = append(tags, "drawing")
		}
		if !p.Connected {
			tags = append(tags, "away")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  - %s (%s): %d%s\n", p.DisplayName, p.ID, p.Score, suffix)
	}
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range l.Games {
		winner := "-"
		if g.Winner != nil {
			winner = *g.Winner
		}
		fmt.Printf("%s  %-24s %s  winner: %s\n", g.ID, g.RoomName, g.CompletedAt.Format("2006-01-02 15:04"), winner)
	}
}

func (o *Output) printGame(g response.GameSummary) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Room: %s (%s)\n", g.RoomName, g.RoomID)
	fmt.Printf("Played: %s to %s\n", g.StartedAt.Format("2006-01-02 15:04"), g.CompletedAt.Format("15:04"))

	fmt.Println("\nFinal Scores:")
	for _, p := range g.Players {
		fmt.Printf("  %s: %d points\n", p.DisplayName, p.Score)
	}

	if len(g.Rounds) > 0 {
		fmt.Println("\nRounds:")
		for _, r := range g.Rounds {
			fmt.Printf("  %d. %s drew %q: %s\n", r.Number, r.DrawerID, r.Word, r.Outcome)
		}
	}
}

func (o *Output) printLeaderboard(l response.Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("No scores yet")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("%3d. %-24s %d\n", e.Rank, e.DisplayName, e.Points)
	}
}

func (o *Output) printPresence(p response.PresenceList) {
	state := "offline"
	if p.Online {
		state = "online"
	}
	fmt.Printf("User: %s (%s)\n", p.UserID, state)
	for _, r := range p.Rooms {
		fmt.Printf("  - %s (%s) %s\n", r.RoomName, r.RoomID, r.Status)
	}
}
