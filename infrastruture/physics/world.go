// Package physics provides an in-memory static collision world for generated levels.
package physics

import (
	"errors"
	"sync"

	"github.com/beka-birhanu/drone-maze/level"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrUnknownBody = errors.New("unknown or already disposed body")
	ErrEmptyBox    = errors.New("collision box has non-positive extent")
)

var _ level.PhysicsWorld = &World{}

// World tracks live axis-aligned boxes keyed by body ID.
type World struct {
	bodies map[level.BodyID]level.CollisionBox
	sync.RWMutex
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		bodies: make(map[level.BodyID]level.CollisionBox),
	}
}

// CreateBox registers box and returns its handle.
func (w *World) CreateBox(box level.CollisionBox) (level.BodyID, error) {
	if box.HalfExtents.X <= 0 || box.HalfExtents.Y <= 0 || box.HalfExtents.Z <= 0 {
		return uuid.Nil, ErrEmptyBox
	}

	w.Lock()
	defer w.Unlock()

	id := uuid.New()
	w.bodies[id] = box
	return id, nil
}

// Dispose removes a body. Disposing the same body twice reports ErrUnknownBody.
func (w *World) Dispose(id level.BodyID) error {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.bodies[id]; !ok {
		return ErrUnknownBody
	}
	delete(w.bodies, id)
	return nil
}

// Live returns the number of bodies not yet disposed.
func (w *World) Live() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.bodies)
}

// Hits returns the bodies whose box contains p.
func (w *World) Hits(p level.Vec3) mapset.Set[level.BodyID] {
	w.RLock()
	defer w.RUnlock()

	hits := mapset.New[level.BodyID]()
	for id, box := range w.bodies {
		if box.Contains(p) {
			hits.Put(id)
		}
	}
	return hits
}
