package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func summary(id string, completedAt time.Time) *model.GameSummary {
	return &model.GameSummary{
		ID:       model.GameID(id),
		RoomID:   "ROOM01",
		RoomName: "Test",
		Players: []model.PlayerScore{
			{PlayerID: "p1", UserID: "u1", DisplayName: "Alice", Score: 200},
			{PlayerID: "p2", UserID: "u2", DisplayName: "Bob", Score: 100},
		},
		WinnerID:    "p1",
		CompletedAt: completedAt,
	}
}

// Word list tests

func (s *StorageSuite) TestGetWordsBeforeSave() {
	_, err := s.storage.GetWords(s.ctx)
	s.ErrorIs(err, model.ErrNoWords)
}

func (s *StorageSuite) TestSaveAndGetWords() {
	err := s.storage.SaveWords(s.ctx, []string{"lune", "soleil"})
	s.Require().NoError(err)

	words, err := s.storage.GetWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"lune", "soleil"}, words)
}

func (s *StorageSuite) TestSaveWordsReplaces() {
	_ = s.storage.SaveWords(s.ctx, []string{"lune"})
	_ = s.storage.SaveWords(s.ctx, []string{"chat", "chien"})

	words, _ := s.storage.GetWords(s.ctx)
	s.ElementsMatch([]string{"chat", "chien"}, words)
}

// Game summary tests

func (s *StorageSuite) TestSaveAndGetGameSummary() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := s.storage.SaveGameSummary(s.ctx, summary("g1", now))
	s.Require().NoError(err)

	got, err := s.storage.GetGameSummary(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(model.RoomID("ROOM01"), got.RoomID)
	s.Len(got.Players, 2)
}

func (s *StorageSuite) TestGetGameSummaryNotFound() {
	_, err := s.storage.GetGameSummary(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGameSummariesNewestFirst() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGameSummary(s.ctx, summary("g1", now))
	_ = s.storage.SaveGameSummary(s.ctx, summary("g2", now.Add(time.Minute)))
	_ = s.storage.SaveGameSummary(s.ctx, summary("g3", now.Add(2*time.Minute)))

	games, err := s.storage.ListGameSummaries(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("g3"), games[0].ID)
	s.Equal(model.GameID("g2"), games[1].ID)
}

// Leaderboard tests

func (s *StorageSuite) TestLeaderboardAccumulatesPoints() {
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u1", "Alice", 100)
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u2", "Bob", 300)
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u1", "Alice", 250)

	entries, err := s.storage.TopLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(model.UserID("u1"), entries[0].UserID)
	s.Equal("Alice", entries[0].DisplayName)
	s.Equal(350, entries[0].Points)
	s.Equal(1, entries[0].Rank)

	s.Equal(model.UserID("u2"), entries[1].UserID)
	s.Equal(2, entries[1].Rank)
}

func (s *StorageSuite) TestLeaderboardLimit() {
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u1", "Alice", 100)
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u2", "Bob", 200)
	_ = s.storage.AddLeaderboardPoints(s.ctx, "u3", "Carol", 300)

	entries, err := s.storage.TopLeaderboard(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.UserID("u3"), entries[0].UserID)
}
