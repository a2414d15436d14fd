// Package domain holds the records the level service persists.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LevelRecord is a generated maze level as stored by the level service.
// Grid holds the rendered character grid, one string per row.
type LevelRecord struct {
	ID        uuid.UUID `bson:"_id"`
	Dimension int       `bson:"dimension"`
	Seed      int64     `bson:"seed"`
	Algorithm string    `bson:"algorithm"`
	Grid      []string  `bson:"grid"`
	Walls     int       `bson:"walls"`
	CreatedAt time.Time `bson:"createdAt"`
}

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrLevelExists   = errors.New("level with these generation parameters already exists")
	ErrPilotNotFound = errors.New("pilot not found")
)
