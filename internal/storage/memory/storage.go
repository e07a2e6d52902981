package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	words        []string
	games        map[model.GameID]*model.GameSummary
	gameOrder    []model.GameID // newest last
	points       map[model.UserID]int
	displayNames map[model.UserID]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:        make(map[model.GameID]*model.GameSummary),
		points:       make(map[model.UserID]int),
		displayNames: make(map[model.UserID]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Word list operations

func (s *Storage) GetWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.words == nil {
		return nil, model.ErrNoWords
	}
	result := make([]string, len(s.words))
	copy(result, s.words)
	return result, nil
}

func (s *Storage) SaveWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make([]string, len(words))
	copy(s.words, words)
	return nil
}

// Finished game operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[summary.ID]; !ok {
		s.gameOrder = append(s.gameOrder, summary.ID)
	}
	cp := *summary
	s.games[summary.ID] = &cp
	return nil
}

func (s *Storage) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	cp := *summary
	return &cp, nil
}

func (s *Storage) ListGameSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.GameSummary, 0, len(s.gameOrder))
	for i := len(s.gameOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		cp := *s.games[s.gameOrder[i]]
		result = append(result, &cp)
	}
	return result, nil
}

// Leaderboard operations

func (s *Storage) AddLeaderboardPoints(ctx context.Context, userID model.UserID, displayName string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[userID] += points
	if displayName != "" {
		s.displayNames[userID] = displayName
	}
	return nil
}

func (s *Storage) TopLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.points))
	for userID, points := range s.points {
		entries = append(entries, model.LeaderboardEntry{
			UserID:      userID,
			DisplayName: s.displayNames[userID],
			Points:      points,
		})
	}
	// Same ordering as a redis ZREVRANGE: score desc, then member desc
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID > entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
