package i

import (
	"context"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/google/uuid"
)

// PilotRepo defines the interface for pilot persistence operations.
type PilotRepo interface {
	// Save inserts or updates a pilot in the repository.
	// If the pilot already exists, it updates the record. Otherwise, it creates a new one.
	Save(pilot *dmn.Pilot) error

	// ByID retrieves a pilot by their unique ID.
	// Returns an error if the pilot is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Pilot, error)

	// ByCallsign retrieves a pilot by their callsign.
	// Returns an error if the pilot is not found or in case of an unexpected error.
	ByCallsign(callsign string) (*dmn.Pilot, error)
}

// LevelRepo stores generated levels.
type LevelRepo interface {
	// Save stores a level. Returns dmn.ErrLevelExists if another level already has the same
	// dimension, seed, and algorithm.
	Save(ctx context.Context, level *dmn.LevelRecord) error
	ByID(ctx context.Context, id uuid.UUID) (*dmn.LevelRecord, error)
	// BySeed finds a stored level generated with the same parameters.
	BySeed(ctx context.Context, dimension int, seed int64, algorithm string) (*dmn.LevelRecord, error)
}
