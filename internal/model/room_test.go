package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func runningRoom() *model.Room {
	return &model.Room{
		ID:                   "ROOM01",
		Name:                 "Salon",
		MaxPlayers:           4,
		RoundDurationSeconds: 60,
		TotalRounds:          2,
		Players: map[model.PlayerID]*model.Player{
			"p2": {ID: "p2", UserID: "bob", DisplayName: "Bob", JoinedAt: t0.Add(time.Second), Connected: true},
			"p1": {ID: "p1", UserID: "alice", DisplayName: "Alice", JoinedAt: t0, Connected: true, IsDrawing: true},
			"p3": {ID: "p3", UserID: "carol", DisplayName: "Carol", JoinedAt: t0.Add(time.Second)},
		},
		Round: &model.Round{
			Number:       1,
			Word:         "soleil",
			RevealedMask: "______",
			DrawerID:     "p1",
			StartedAt:    t0,
			EndsAt:       t0.Add(time.Minute),
		},
		History: []model.RoundRecord{{Number: 0, Word: "lune"}},
		Status:  model.RoomStatusRunning,
	}
}

func TestSortedPlayersByJoinTimeThenID(t *testing.T) {
	players := runningRoom().SortedPlayers()

	ids := make([]model.PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	assert.Equal(t, []model.PlayerID{"p1", "p2", "p3"}, ids)
}

func TestCloneIsDeep(t *testing.T) {
	r := runningRoom()
	c := r.Clone()

	c.Players["p1"].Score = 100
	c.Round.RevealedMask = "s_____"
	c.History[0].Word = "chat"
	delete(c.Players, "p3")

	assert.Equal(t, 0, r.Players["p1"].Score)
	assert.Equal(t, "______", r.Round.RevealedMask)
	assert.Equal(t, "lune", r.History[0].Word)
	assert.Len(t, r.Players, 3)
}

func TestCloneNil(t *testing.T) {
	var r *model.Room
	assert.Nil(t, r.Clone())
}

func TestHelpers(t *testing.T) {
	r := runningRoom()

	assert.Equal(t, time.Minute, r.RoundDuration())
	assert.Equal(t, 2, r.ConnectedCount())
	assert.True(t, r.IsDrawer("p1"))
	assert.False(t, r.IsDrawer("p2"))
	require.NotNil(t, r.FindByUser("bob"))
	assert.Equal(t, model.PlayerID("p2"), r.FindByUser("bob").ID)
	assert.Nil(t, r.FindByUser("dave"))

	r.Round = nil
	assert.False(t, r.IsDrawer("p1"))
}

func TestRoomViewNeverCarriesWord(t *testing.T) {
	view := model.NewRoomView(runningRoom())

	require.NotNil(t, view.Round)
	assert.Equal(t, "______", view.Round.Revealed)
	assert.Equal(t, t0.Add(time.Minute).UnixMilli(), view.Round.RoundEndsAt)
	assert.Equal(t, model.PlayerID("p1"), view.Players[0].ID)
	assert.True(t, view.Players[0].IsDrawing)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "soleil")
}

func TestRoomSummaryView(t *testing.T) {
	summary := model.NewRoomSummaryView(runningRoom())

	assert.Equal(t, model.RoomID("ROOM01"), summary.ID)
	assert.Equal(t, 3, summary.PlayerCount)
	assert.Equal(t, 4, summary.MaxPlayers)
	assert.Equal(t, model.RoomStatusRunning, summary.Status)
}
