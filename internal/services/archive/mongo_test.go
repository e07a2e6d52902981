package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage/memory"
)

func TestMongoSink(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("persist upserts the summary", func(mt *mtest.T) {
		sink := NewMongoSink(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "g1"}}}},
		))

		require.NoError(mt, sink.Persist(ctx, finishedGame("g1")))
	})

	mt.Run("persist surfaces write errors", func(mt *mtest.T) {
		sink := NewMongoSink(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		require.Error(mt, sink.Persist(ctx, finishedGame("g1")))
	})

	mt.Run("get decodes the summary", func(mt *mtest.T) {
		sink := NewMongoSink(mt.DB)
		ns := mt.DB.Name() + "." + GamesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "g1"},
			{Key: "room_id", Value: "ROOM01"},
			{Key: "room_name", Value: "Test"},
			{Key: "winner_id", Value: "p1"},
		}))

		summary, err := sink.Get(ctx, "g1")
		require.NoError(mt, err)
		require.Equal(mt, model.GameID("g1"), summary.ID)
		require.Equal(mt, "Test", summary.RoomName)
		require.Equal(mt, model.PlayerID("p1"), summary.WinnerID)
	})

	mt.Run("get maps missing documents", func(mt *mtest.T) {
		sink := NewMongoSink(mt.DB)
		ns := mt.DB.Name() + "." + GamesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := sink.Get(ctx, "missing")
		require.ErrorIs(mt, err, model.ErrGameNotFound)
	})

	mt.Run("games reader falls back to mongo", func(mt *mtest.T) {
		games := NewGames(memory.New(), NewMongoSink(mt.DB))
		ns := mt.DB.Name() + "." + GamesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "expired"},
			{Key: "room_name", Value: "Old"},
		}))

		summary, err := games.Get(ctx, "expired")
		require.NoError(mt, err)
		require.Equal(mt, "Old", summary.RoomName)
	})
}
