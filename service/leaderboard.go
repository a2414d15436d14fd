package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/google/uuid"
)

const (
	leaderboardKeyFmt = "dronemaze:leaderboard:%s"
	defaultTop        = 10
	maxTop            = 100
	unknownCallsign   = "unknown"
)

var ErrInvalidFlightTime = errors.New("flight time must be positive")

// Standing is one row of a level leaderboard.
type Standing struct {
	Rank     int
	PilotID  uuid.UUID
	Callsign string
	Duration time.Duration
}

// Leaderboard keeps each pilot's best flight time per level.
type Leaderboard struct {
	store  i.SortedStore
	levels i.LevelRepo
	pilots i.PilotRepo
	logger i.Logger
}

// NewLeaderboard wires a Leaderboard.
func NewLeaderboard(store i.SortedStore, levels i.LevelRepo, pilots i.PilotRepo, logger i.Logger) (*Leaderboard, error) {
	if store == nil || levels == nil || pilots == nil || logger == nil {
		return nil, errors.New("leaderboard needs a store, level repo, pilot repo, and logger")
	}
	return &Leaderboard{
		store:  store,
		levels: levels,
		pilots: pilots,
		logger: logger,
	}, nil
}

func leaderboardKey(levelID uuid.UUID) string {
	return fmt.Sprintf(leaderboardKeyFmt, levelID)
}

// Submit records a completed flight. Only a pilot's fastest time on a level is kept.
func (lb *Leaderboard) Submit(ctx context.Context, levelID, pilotID uuid.UUID, d time.Duration) error {
	if d <= 0 {
		return ErrInvalidFlightTime
	}
	if _, err := lb.levels.ByID(ctx, levelID); err != nil {
		return err
	}

	if err := lb.store.AddIfLower(ctx, leaderboardKey(levelID), float64(d.Milliseconds()), pilotID.String()); err != nil {
		lb.logger.Error(fmt.Sprintf("Failed to record flight: Level=%s Pilot=%s: %s", levelID, pilotID, err))
		return err
	}

	lb.logger.Info(fmt.Sprintf("Flight recorded: Level=%s Pilot=%s Time=%s", levelID, pilotID, d))
	return nil
}

// Top returns up to n standings, fastest first. n is clamped to [1, 100]; 0 selects 10.
func (lb *Leaderboard) Top(ctx context.Context, levelID uuid.UUID, n int) ([]Standing, error) {
	switch {
	case n == 0:
		n = defaultTop
	case n < 0:
		n = 1
	case n > maxTop:
		n = maxTop
	}

	entries, err := lb.store.Lowest(ctx, leaderboardKey(levelID), int64(n))
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(entries))
	for _, e := range entries {
		pilotID, err := uuid.Parse(e.Member)
		if err != nil {
			lb.logger.Warning(fmt.Sprintf("Skipping malformed leaderboard member %q", e.Member))
			continue
		}

		callsign := unknownCallsign
		if pilot, err := lb.pilots.ByID(pilotID); err == nil {
			callsign = pilot.Callsign
		}

		standings = append(standings, Standing{
			Rank:     len(standings) + 1,
			PilotID:  pilotID,
			Callsign: callsign,
			Duration: time.Duration(e.Score) * time.Millisecond,
		})
	}
	return standings, nil
}

// Entries returns how many pilots have a time on the level.
func (lb *Leaderboard) Entries(ctx context.Context, levelID uuid.UUID) int64 {
	return lb.store.Count(ctx, leaderboardKey(levelID))
}
