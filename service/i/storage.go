package i

import (
	"context"
)

// LevelCache keeps rendered character grids keyed by generation parameters.
type LevelCache interface {
	// Get returns the cached grid and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, grid string) error
	// Lock serializes generation for key across service instances.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ScoredMember is one entry of a sorted store.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedStore keeps members ordered by ascending score.
type SortedStore interface {
	// AddIfLower records score for member unless a lower score is already stored.
	AddIfLower(ctx context.Context, key string, score float64, member string) error
	// Lowest returns up to n members with the lowest scores.
	Lowest(ctx context.Context, key string, n int64) ([]ScoredMember, error)
	// Count returns the number of members under key.
	Count(ctx context.Context, key string) int64
}

// Logger is the leveled logger services write to.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
