package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LevelRepo stores generated levels in MongoDB.
type LevelRepo struct {
	collection *mongo.Collection
}

// NewLevelRepo creates a LevelRepo backed by the given database and collection.
func NewLevelRepo(client *mongo.Client, dbName, collectionName string) *LevelRepo {
	return &LevelRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts the level, replacing any record with the same ID. It returns
// dmn.ErrLevelExists when another record already holds the same generation parameters.
func (l *LevelRepo) Save(ctx context.Context, level *dmn.LevelRecord) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := l.collection.ReplaceOne(ctx, bson.M{"_id": level.ID}, level, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrLevelExists
		}
		return fmt.Errorf("saving level %s: %w", level.ID, err)
	}
	return nil
}

// ByID retrieves a level by its ID.
func (l *LevelRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.LevelRecord, error) {
	return l.findOne(ctx, bson.M{"_id": id})
}

// BySeed retrieves the level generated with the given parameters.
func (l *LevelRepo) BySeed(ctx context.Context, dimension int, seed int64, algorithm string) (*dmn.LevelRecord, error) {
	return l.findOne(ctx, bson.M{"dimension": dimension, "seed": seed, "algorithm": algorithm})
}

func (l *LevelRepo) findOne(ctx context.Context, filter bson.M) (*dmn.LevelRecord, error) {
	var level dmn.LevelRecord
	if err := l.collection.FindOne(ctx, filter).Decode(&level); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrLevelNotFound
		}
		return nil, fmt.Errorf("finding level: %w", err)
	}
	return &level, nil
}

// EnsureIndexes creates the unique generation-parameters index used by BySeed.
func (l *LevelRepo) EnsureIndexes(ctx context.Context) error {
	_, err := l.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dimension", Value: 1}, {Key: "seed", Value: 1}, {Key: "algorithm", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
