package archive

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// GamesCollection is the Mongo collection holding finished games
const GamesCollection = "games"

// MongoSink archives finished games in MongoDB
type MongoSink struct {
	games *mongo.Collection
}

// NewMongoSink creates a sink writing to the games collection of db
func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{games: db.Collection(GamesCollection)}
}

var _ Sink = (*MongoSink)(nil)

// Persist upserts the summary keyed by game id
func (m *MongoSink) Persist(ctx context.Context, summary *model.GameSummary) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.games.ReplaceOne(ctx, bson.M{"_id": summary.ID}, summary, opts)
	return err
}

// Get loads an archived game
func (m *MongoSink) Get(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	var summary model.GameSummary
	err := m.games.FindOne(ctx, bson.M{"_id": id}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
