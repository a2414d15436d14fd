package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/google/uuid"
)

type memLevelRepo struct {
	levels map[uuid.UUID]*dmn.LevelRecord
	saves  int
	mu     sync.Mutex

	// lookupBarrier, when set, holds each BySeed call until every caller it counts has arrived.
	lookupBarrier *sync.WaitGroup
	lookups       int
}

func newMemLevelRepo() *memLevelRepo {
	return &memLevelRepo{levels: make(map[uuid.UUID]*dmn.LevelRecord)}
}

// Save enforces the unique generation-parameters index the Mongo repo creates.
func (r *memLevelRepo) Save(_ context.Context, level *dmn.LevelRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.levels {
		if l.ID != level.ID && l.Dimension == level.Dimension && l.Seed == level.Seed && l.Algorithm == level.Algorithm {
			return dmn.ErrLevelExists
		}
	}
	r.levels[level.ID] = level
	r.saves++
	return nil
}

func (r *memLevelRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.LevelRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.levels[id]; ok {
		return l, nil
	}
	return nil, dmn.ErrLevelNotFound
}

func (r *memLevelRepo) BySeed(_ context.Context, dimension int, seed int64, algorithm string) (*dmn.LevelRecord, error) {
	r.mu.Lock()
	barrier := r.lookupBarrier
	if barrier != nil {
		r.lookups++
		if r.lookups > 2 {
			barrier = nil
		}
	}
	r.mu.Unlock()
	if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.levels {
		if l.Dimension == dimension && l.Seed == seed && l.Algorithm == algorithm {
			return l, nil
		}
	}
	return nil, dmn.ErrLevelNotFound
}

type memCache struct {
	grids  map[string]string
	locks  int
	getErr error
	mu     sync.Mutex // guards grids and locks
	gen    sync.Mutex // generation lock handed out by Lock
}

func newMemCache() *memCache {
	return &memCache{grids: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.grids[key]
	return g, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, grid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[key] = grid
	return nil
}

func (c *memCache) Lock(_ context.Context, _ string) (func(), error) {
	c.gen.Lock()
	c.mu.Lock()
	c.locks++
	c.mu.Unlock()
	return c.gen.Unlock, nil
}

type memSortedStore struct {
	sets map[string]map[string]float64
}

func newMemSortedStore() *memSortedStore {
	return &memSortedStore{sets: make(map[string]map[string]float64)}
}

func (s *memSortedStore) AddIfLower(_ context.Context, key string, score float64, member string) error {
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]float64)
		s.sets[key] = set
	}
	if old, ok := set[member]; !ok || score < old {
		set[member] = score
	}
	return nil
}

func (s *memSortedStore) Lowest(_ context.Context, key string, n int64) ([]i.ScoredMember, error) {
	var members []i.ScoredMember
	for m, score := range s.sets[key] {
		members = append(members, i.ScoredMember{Member: m, Score: score})
	}
	sort.Slice(members, func(a, b int) bool { return members[a].Score < members[b].Score })
	if int64(len(members)) > n {
		members = members[:n]
	}
	return members, nil
}

func (s *memSortedStore) Count(_ context.Context, key string) int64 {
	return int64(len(s.sets[key]))
}

type memPilotRepo struct {
	pilots map[uuid.UUID]*dmn.Pilot
}

func newMemPilotRepo() *memPilotRepo {
	return &memPilotRepo{pilots: make(map[uuid.UUID]*dmn.Pilot)}
}

func (r *memPilotRepo) Save(p *dmn.Pilot) error {
	for _, existing := range r.pilots {
		if existing.Callsign == p.Callsign && existing.ID != p.ID {
			return dmn.ErrCallsignTaken
		}
	}
	r.pilots[p.ID] = p
	return nil
}

func (r *memPilotRepo) ByID(id uuid.UUID) (*dmn.Pilot, error) {
	if p, ok := r.pilots[id]; ok {
		return p, nil
	}
	return nil, dmn.ErrPilotNotFound
}

func (r *memPilotRepo) ByCallsign(callsign string) (*dmn.Pilot, error) {
	for _, p := range r.pilots {
		if p.Callsign == callsign {
			return p, nil
		}
	}
	return nil, dmn.ErrPilotNotFound
}

type recordingLogger struct {
	infos, warnings, errors []string
	mu                      sync.Mutex
}

func (l *recordingLogger) Info(msg string)    { l.record(&l.infos, msg) }
func (l *recordingLogger) Warning(msg string) { l.record(&l.warnings, msg) }
func (l *recordingLogger) Error(msg string)   { l.record(&l.errors, msg) }

func (l *recordingLogger) record(into *[]string, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*into = append(*into, msg)
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	s.claims = claims
	return "signed-token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}
