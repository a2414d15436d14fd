package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PilotRepo handles the persistence of pilot models.
type PilotRepo struct {
	collection *mongo.Collection
}

// NewPilotRepo creates a new PilotRepo with the given MongoDB client, database name, and collection name.
func NewPilotRepo(client *mongo.Client, dbName, collectionName string) *PilotRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PilotRepo{
		collection: collection,
	}
}

// Save inserts or updates a pilot in the repository.
func (p *PilotRepo) Save(pilot *dmn.Pilot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": pilot.ID}
	update := bson.M{
		"$set": bson.M{
			"callsign":     pilot.Callsign,
			"passwordHash": pilot.PasswordHash,
			"updatedAt":    time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrCallsignTaken
		}
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a pilot by their ID.
func (p *PilotRepo) ByID(id uuid.UUID) (*dmn.Pilot, error) {
	return p.findOne(bson.M{"_id": id})
}

// ByCallsign retrieves a pilot by their callsign.
func (p *PilotRepo) ByCallsign(callsign string) (*dmn.Pilot, error) {
	return p.findOne(bson.M{"callsign": callsign})
}

func (p *PilotRepo) findOne(filter bson.M) (*dmn.Pilot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var pilot dmn.Pilot
	if err := p.collection.FindOne(ctx, filter).Decode(&pilot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrPilotNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &pilot, nil
}

// EnsureIndexes creates the unique callsign index.
func (p *PilotRepo) EnsureIndexes(ctx context.Context) error {
	_, err := p.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "callsign", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
