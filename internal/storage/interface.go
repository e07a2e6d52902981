package storage

import (
	"context"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Storage defines durable data kept outside the live room map.
// Live rooms are never persisted here.
type Storage interface {
	// Word list operations
	GetWords(ctx context.Context) ([]string, error)
	SaveWords(ctx context.Context, words []string) error

	// Finished game operations
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error)
	ListGameSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)

	// Leaderboard operations
	AddLeaderboardPoints(ctx context.Context, userID model.UserID, displayName string, points int) error
	TopLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}
