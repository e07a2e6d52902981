package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage/memory"
)

type mapReader struct {
	games map[model.GameID]*model.GameSummary
	err   error
	calls int
}

func (r *mapReader) Get(_ context.Context, id model.GameID) (*model.GameSummary, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if g, ok := r.games[id]; ok {
		return g, nil
	}
	return nil, model.ErrGameNotFound
}

func TestGamesPrefersStorage(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveGameSummary(ctx, finishedGame("g1")))
	fallback := &mapReader{}

	got, err := NewGames(store, fallback).Get(ctx, "g1")

	require.NoError(t, err)
	assert.Equal(t, model.GameID("g1"), got.ID)
	assert.Zero(t, fallback.calls)
}

func TestGamesFallsBackWhenStorageForgot(t *testing.T) {
	ctx := context.Background()
	empty := &mapReader{}
	archived := &mapReader{games: map[model.GameID]*model.GameSummary{"old": finishedGame("old")}}

	got, err := NewGames(memory.New(), empty, archived).Get(ctx, "old")

	require.NoError(t, err)
	assert.Equal(t, model.GameID("old"), got.ID)
	assert.Equal(t, 1, empty.calls)
}

func TestGamesNotFoundAnywhere(t *testing.T) {
	_, err := NewGames(memory.New(), &mapReader{}).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestGamesSurfacesFallbackErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewGames(memory.New(), &mapReader{err: boom}).Get(context.Background(), "g1")

	assert.ErrorIs(t, err, boom)
}
