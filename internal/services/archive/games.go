package archive

import (
	"context"
	"errors"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

// Reader loads an archived game
type Reader interface {
	Get(ctx context.Context, id model.GameID) (*model.GameSummary, error)
}

var _ Reader = (*MongoSink)(nil)

// Games reads finished games from storage first, then from long-term archives.
// Storage copies can expire, so older games are only found in the fallbacks.
type Games struct {
	storage   storage.Storage
	fallbacks []Reader
}

// NewGames creates a reader over storage and the given fallbacks, tried in order
func NewGames(storage storage.Storage, fallbacks ...Reader) *Games {
	return &Games{storage: storage, fallbacks: fallbacks}
}

var _ Reader = (*Games)(nil)

// Get returns the game, or model.ErrGameNotFound when no source has it
func (g *Games) Get(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	summary, err := g.storage.GetGameSummary(ctx, id)
	if !errors.Is(err, model.ErrGameNotFound) {
		return summary, err
	}

	for _, r := range g.fallbacks {
		summary, err = r.Get(ctx, id)
		if !errors.Is(err, model.ErrGameNotFound) {
			return summary, err
		}
	}
	return nil, model.ErrGameNotFound
}
