package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

// Sink persists finished games
type Sink interface {
	Persist(ctx context.Context, summary *model.GameSummary) error
}

// StorageSink saves summaries to storage and credits the leaderboard
type StorageSink struct {
	storage storage.Storage
}

// NewStorageSink creates a sink backed by storage
func NewStorageSink(storage storage.Storage) *StorageSink {
	return &StorageSink{storage: storage}
}

var _ Sink = (*StorageSink)(nil)

// Persist saves the summary, then adds every player's score to the leaderboard
func (s *StorageSink) Persist(ctx context.Context, summary *model.GameSummary) error {
	if err := s.storage.SaveGameSummary(ctx, summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	for _, p := range summary.Players {
		if p.Score <= 0 || p.UserID == "" {
			continue
		}
		if err := s.storage.AddLeaderboardPoints(ctx, p.UserID, p.DisplayName, p.Score); err != nil {
			return fmt.Errorf("leaderboard %s: %w", p.UserID, err)
		}
	}
	return nil
}

// Multi fans a summary out to several sinks. Every sink is attempted.
type Multi []Sink

var _ Sink = Multi(nil)

// Persist calls every sink and joins their errors
func (m Multi) Persist(ctx context.Context, summary *model.GameSummary) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Persist(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
