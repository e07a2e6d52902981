package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour
	cfg.MaxGameIndex = 3

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func summary(id string) *model.GameSummary {
	return &model.GameSummary{
		ID:       model.GameID(id),
		RoomID:   "ROOM01",
		RoomName: "Test",
		Players: []model.PlayerScore{
			{PlayerID: "p1", UserID: "u1", DisplayName: "Alice", Score: 200},
		},
		Rounds: []model.RoundRecord{
			{Number: 1, DrawerID: "p2", Word: "lune", WinnerID: "p1", Outcome: model.RoundOutcomeGuessed},
		},
		WinnerID:    "p1",
		CompletedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Word list tests

func (s *StorageSuite) TestGetWordsBeforeSave() {
	_, err := s.storage.GetWords(s.ctx)
	s.ErrorIs(err, model.ErrNoWords)
}

func (s *StorageSuite) TestSaveAndGetWords() {
	err := s.storage.SaveWords(s.ctx, []string{"lune", "soleil", "lune"})
	s.Require().NoError(err)

	words, err := s.storage.GetWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"lune", "soleil"}, words)
}

func (s *StorageSuite) TestSaveWordsReplaces() {
	_ = s.storage.SaveWords(s.ctx, []string{"lune"})
	_ = s.storage.SaveWords(s.ctx, []string{"chat"})

	words, _ := s.storage.GetWords(s.ctx)
	s.Equal([]string{"chat"}, words)
}

// Game summary tests

func (s *StorageSuite) TestSaveAndGetGameSummary() {
	err := s.storage.SaveGameSummary(s.ctx, summary("g1"))
	s.Require().NoError(err)

	got, err := s.storage.GetGameSummary(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal("Test", got.RoomName)
	s.Require().Len(got.Rounds, 1)
	s.Equal("lune", got.Rounds[0].Word)
}

func (s *StorageSuite) TestGameSummaryHasTTL() {
	_ = s.storage.SaveGameSummary(s.ctx, summary("g1"))

	s.Equal(time.Hour, s.mini.TTL("drawsyn:game:g1"))
}

func (s *StorageSuite) TestGetGameSummaryNotFound() {
	_, err := s.storage.GetGameSummary(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGameSummariesNewestFirst() {
	_ = s.storage.SaveGameSummary(s.ctx, summary("g1"))
	_ = s.storage.SaveGameSummary(s.ctx, summary("g2"))

	games, err := s.storage.ListGameSummaries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("g2"), games[0].ID)
	s.Equal(model.GameID("g1"), games[1].ID)
}

func (s *StorageSuite) TestGameIndexIsTrimmed() {
	for _, id := range []string{"g1", "g2", "g3", "g4"} {
		_ = s.storage.SaveGameSummary(s.ctx, summary(id))
	}

	games, err := s.storage.ListGameSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(games, 3)
	s.Equal(model.GameID("g4"), games[0].ID)
}

func (s *StorageSuite) TestListSkipsExpiredSummaries() {
	_ = s.storage.SaveGameSummary(s.ctx, summary("g1"))
	_ = s.storage.SaveGameSummary(s.ctx, summary("g2"))
	s.mini.Del("drawsyn:game:g1")

	games, err := s.storage.ListGameSummaries(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("g2"), games[0].ID)
}

// Leaderboard tests

func (s *StorageSuite) TestLeaderboard() {
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

func (s *StorageSuite) TestLeaderboardEmpty() {
	entries, err := s.storage.TopLeaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
