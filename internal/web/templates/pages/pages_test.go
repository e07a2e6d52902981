package pages_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/layout"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/pages"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRoomMarksDrawerAndAwayPlayers(t *testing.T) {
	doc := render(t, pages.Room(pages.RoomData{
		PageData: layout.PageData{Title: "Les Artistes"},
		Room: model.RoomView{
			ID:           "ROOM01",
			Name:         "Les Artistes",
			TotalRounds:  3,
			RoundsPlayed: 1,
			Status:       model.RoomStatusRunning,
			Players: []model.PlayerView{
				{ID: "p1", DisplayName: "Alice", Score: 100, IsDrawing: true, Connected: true},
				{ID: "p2", DisplayName: "Bob", Score: 20},
			},
			Round: &model.RoundView{Number: 2, Revealed: "____"},
		},
	}))

	assert.Equal(t, "player drawing", doc.Find("#player-list li").First().AttrOr("class", ""))
	assert.Equal(t, "player away", doc.Find("#player-list li").Last().AttrOr("class", ""))
	assert.Equal(t, "Round 1 of 3 · running", doc.Find(".room-progress").Text())
	assert.Equal(t, "Round 2", doc.Find("#round h2").Text())
	assert.Equal(t, "Les Artistes · Drawsyn", doc.Find("title").Text())
}

func TestBaseShowsUserRoomsAndFlash(t *testing.T) {
	doc := render(t, pages.Error(layout.PageData{
		Title:       "Oops",
		User:        &model.Identity{UserID: "alice", DisplayName: "Alice"},
		Flash:       &layout.FlashMessage{Type: "error", Message: "<b>bad</b>"},
		ActiveRooms: []model.Presence{{RoomID: "ROOM01", RoomName: "Les Artistes"}},
	}, "Something broke"))

	assert.Equal(t, "Alice", doc.Find(".nav-user").Text())
	assert.Equal(t, "/rooms/ROOM01", doc.Find("a.active-room").AttrOr("href", ""))
	assert.Equal(t, "flash flash-error", doc.Find("[role=status]").AttrOr("class", ""))
	assert.Equal(t, "<b>bad</b>", doc.Find(".flash").Text())
	assert.Equal(t, 0, doc.Find(".flash b").Length())
	assert.Equal(t, "Something broke", doc.Find("main .error-message").Text())
}

func TestGameHighlightsWinner(t *testing.T) {
	doc := render(t, pages.Game(pages.GameData{
		Game: &model.GameSummary{
			ID:       "g1",
			RoomName: "Les Artistes",
			WinnerID: "p1",
			Players: []model.PlayerScore{
				{PlayerID: "p1", DisplayName: "Alice", Score: 120},
				{PlayerID: "p2", DisplayName: "Bob", Score: 40},
			},
			Rounds: []model.RoundRecord{{Number: 1, Word: "lune", Outcome: model.RoundOutcomeGuessed}},
		},
	}))

	assert.Equal(t, "standing winner", doc.Find("#final-scores li").First().AttrOr("class", ""))
	assert.Equal(t, "standing", doc.Find("#final-scores li").Last().AttrOr("class", ""))
	assert.Equal(t, "round round-guessed", doc.Find("#rounds tr").AttrOr("class", ""))
}

func TestLeaderboardLinksRecentGames(t *testing.T) {
	doc := render(t, pages.Leaderboard(pages.LeaderboardData{
		Entries: []model.LeaderboardEntry{{UserID: "alice", DisplayName: "Alice", Points: 120, Rank: 1}},
		Games:   []*model.GameSummary{{ID: "g1", RoomName: "Les Artistes"}},
	}))

	assert.Equal(t, "120", doc.Find("#leaderboard .points").Text())
	assert.Equal(t, "/games/g1", doc.Find("#recent-games a").AttrOr("href", ""))
}
