package pages

import (
	"github.com/a-h/templ"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/layout"
)

// HomeData is the room browser
type HomeData struct {
	layout.PageData
	Rooms []model.RoomSummaryView
}

// RoomData is a read-only snapshot of one room
type RoomData struct {
	layout.PageData
	Room model.RoomView
}

// LeaderboardData holds the all-time ranking and recent games
type LeaderboardData struct {
	layout.PageData
	Entries []model.LeaderboardEntry
	Games   []*model.GameSummary
}

// GameData is one archived game
type GameData struct {
	layout.PageData
	Game *model.GameSummary
}

func gameURL(id model.GameID) templ.SafeURL {
	return templ.URL("/games/" + string(id))
}
