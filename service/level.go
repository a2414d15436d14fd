package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/maze"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultDimension = 9
	cacheKeyFmt      = "%d:%d:%s"
)

// GenerateRequest selects the maze to generate. Zero values take the service defaults;
// a zero Seed draws a fresh one.
type GenerateRequest struct {
	Dimension int
	Seed      int64
	Algorithm string
}

// Placements summarizes the obstacles of a built level.
type Placements struct {
	LevelID         uuid.UUID
	Columns         []level.Column
	Cubes           []level.CubePlacement
	Boxes           []level.CollisionBox
	RenderInstances int
}

// LevelOptions holds the defaults a LevelService generates with.
type LevelOptions struct {
	Dimension int
	Algorithm string
	Level     level.Config
}

// LevelService generates, stores, and rebuilds maze levels.
type LevelService struct {
	repo       i.LevelRepo
	cache      i.LevelCache
	logger     i.Logger
	newPhysics func() level.PhysicsWorld
	opts       LevelOptions
	now        func() time.Time
}

// NewLevelService wires a LevelService. newPhysics supplies a fresh collision world each time a
// level is rebuilt.
func NewLevelService(repo i.LevelRepo, cache i.LevelCache, logger i.Logger, newPhysics func() level.PhysicsWorld, opts *LevelOptions) (*LevelService, error) {
	if repo == nil || cache == nil || logger == nil || newPhysics == nil {
		return nil, errors.New("level service needs a repo, cache, logger, and physics factory")
	}

	if opts == nil {
		opts = &LevelOptions{}
	}
	if opts.Dimension == 0 {
		opts.Dimension = defaultDimension
	}
	if opts.Algorithm == "" {
		opts.Algorithm = maze.AlgorithmBacktracker
	}
	if opts.Level == (level.Config{}) {
		opts.Level = level.DefaultConfig()
	}

	return &LevelService{
		repo:       repo,
		cache:      cache,
		logger:     logger,
		newPhysics: newPhysics,
		opts:       *opts,
		now:        time.Now,
	}, nil
}

// resolve fills defaults and validates req.
func (s *LevelService) resolve(req GenerateRequest) (GenerateRequest, error) {
	if req.Dimension == 0 {
		req.Dimension = s.opts.Dimension
	}
	if req.Algorithm == "" {
		req.Algorithm = s.opts.Algorithm
	}
	if req.Seed == 0 {
		req.Seed = s.now().UnixNano()
	}

	if err := maze.ValidateDimensions(req.Dimension, req.Dimension); err != nil {
		return req, err
	}
	if _, err := maze.NewCarver(req.Algorithm, nil); err != nil {
		return req, err
	}
	return req, nil
}

// Preview returns the character grid for req without storing a level.
func (s *LevelService) Preview(ctx context.Context, req GenerateRequest) (*maze.CharGrid, GenerateRequest, error) {
	req, err := s.resolve(req)
	if err != nil {
		return nil, req, err
	}
	cg, err := s.charGrid(ctx, req)
	return cg, req, err
}

// Generate returns the stored level for req, generating and storing it first if needed.
func (s *LevelService) Generate(ctx context.Context, req GenerateRequest) (*dmn.LevelRecord, error) {
	req, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.BySeed(ctx, req.Dimension, req.Seed, req.Algorithm)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dmn.ErrLevelNotFound) {
		return nil, err
	}

	cg, err := s.charGrid(ctx, req)
	if err != nil {
		return nil, err
	}

	record := &dmn.LevelRecord{
		ID:        uuid.New(),
		Dimension: req.Dimension,
		Seed:      req.Seed,
		Algorithm: req.Algorithm,
		Grid:      cg.Lines(),
		Walls:     cg.WallCount(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		if !errors.Is(err, dmn.ErrLevelExists) {
			return nil, err
		}
		// A concurrent request stored the same level first.
		return s.repo.BySeed(ctx, req.Dimension, req.Seed, req.Algorithm)
	}

	s.logger.Info(fmt.Sprintf("Generated level: ID=%s Dimension=%d Seed=%d Algorithm=%s", record.ID, record.Dimension, record.Seed, record.Algorithm))
	return record, nil
}

// ByID returns a stored level.
func (s *LevelService) ByID(ctx context.Context, id uuid.UUID) (*dmn.LevelRecord, error) {
	return s.repo.ByID(ctx, id)
}

// Placements rebuilds the stored level against a fresh physics world and reports its
// obstacles. The collision bodies are released before returning.
func (s *LevelService) Placements(ctx context.Context, id uuid.UUID) (*Placements, error) {
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cg, err := maze.ParseCharGrid(strings.Join(record.Grid, "\n"))
	if err != nil {
		return nil, fmt.Errorf("stored level %s: %w", id, err)
	}

	lvl, err := level.BuildMaze(s.opts.Level, cg, s.newPhysics())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lvl.Dispose(); err != nil {
			s.logger.Error(fmt.Sprintf("Disposing level %s: %s", id, err))
		}
	}()

	return &Placements{
		LevelID:         id,
		Columns:         lvl.Columns(),
		Cubes:           lvl.Cubes(),
		Boxes:           lvl.CollisionBoxes(),
		RenderInstances: len(lvl.RenderInstances()),
	}, nil
}

// charGrid serves req from the cache, generating under the cache lock on a miss.
func (s *LevelService) charGrid(ctx context.Context, req GenerateRequest) (*maze.CharGrid, error) {
	key := fmt.Sprintf(cacheKeyFmt, req.Dimension, req.Seed, req.Algorithm)

	if cg, ok := s.cached(ctx, key); ok {
		return cg, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("locking level generation: %w", err)
	}
	defer unlock()

	// Another instance may have generated it while we waited.
	if cg, ok := s.cached(ctx, key); ok {
		return cg, nil
	}

	gen, err := maze.NewGenerator(maze.Config{
		Width:     req.Dimension,
		Height:    req.Dimension,
		Seed:      req.Seed,
		Algorithm: req.Algorithm,
	}, nil)
	if err != nil {
		return nil, err
	}
	res, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, res.CharGrid.String()); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching level grid %s: %s", key, err))
	}
	return res.CharGrid, nil
}

func (s *LevelService) cached(ctx context.Context, key string) (*maze.CharGrid, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Reading cached grid %s: %s", key, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	cg, err := maze.ParseCharGrid(raw)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Discarding cached grid %s: %s", key, err))
		return nil, false
	}
	return cg, true
}
