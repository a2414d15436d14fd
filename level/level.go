// Package level turns obstacle columns into world-space placements: a floor, 3-cube stacks with
// their grid-line overlays, and one collision box per cube registered with a PhysicsWorld.
package level

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

const (
	defaultGridSize  = 2000
	defaultLevelSize = 100000

	// StackHeight is the number of cubes in every obstacle stack.
	StackHeight = 3
)

var (
	ErrInvalidConfig = errors.New("invalid level config")
	ErrDisposed      = errors.New("level already disposed")
)

// PhysicsWorld owns the lifetime of static collision bodies.
type PhysicsWorld interface {
	CreateBox(box CollisionBox) (BodyID, error)
	Dispose(id BodyID) error
}

// Renderer draws render instances.
type Renderer interface {
	Render(instances []Instance) error
}

// Config holds the world dimensions a level is built with.
type Config struct {
	GridSize    float64 // Edge of one grid column in world units
	LevelSize   float64 // Edge of the square floor
	CoverBorder bool    // Place stacks on the outer ring of a maze grid too
}

// DefaultConfig returns the dimensions used by the game.
func DefaultConfig() Config {
	return Config{
		GridSize:  defaultGridSize,
		LevelSize: defaultLevelSize,
	}
}

func (c Config) validate() error {
	if c.GridSize <= 2 {
		return fmt.Errorf("%w: grid size %v must exceed 2", ErrInvalidConfig, c.GridSize)
	}
	if c.LevelSize < c.GridSize {
		return fmt.Errorf("%w: level size %v smaller than grid size %v", ErrInvalidConfig, c.LevelSize, c.GridSize)
	}
	return nil
}

// Level owns the render instances and collision bodies of one generated map.
// Both lists are filled in a single pass and released together by Dispose.
type Level struct {
	cfg             Config
	columns         []Column
	renderInstances []Instance
	cubes           []CubePlacement
	boxes           []CollisionBox
	bodies          []BodyID
	physics         PhysicsWorld
	disposed        bool
	mu              sync.Mutex
}

// Build lays out the floor and one stack per column, then registers a collision box for every
// cube. If any registration fails the bodies created so far are released and no level is
// returned.
func Build(cfg Config, columns []Column, physics PhysicsWorld) (*Level, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if physics == nil {
		return nil, fmt.Errorf("%w: nil physics world", ErrInvalidConfig)
	}

	l := &Level{
		cfg:     cfg,
		columns: slices.Clone(columns),
		physics: physics,
	}

	l.makeFloor()
	for _, c := range columns {
		l.makeStack(c)
	}

	l.bodies = make([]BodyID, 0, len(l.boxes))
	for _, box := range l.boxes {
		id, err := physics.CreateBox(box)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("registering collision box: %w", err), l.Dispose())
		}
		l.bodies = append(l.bodies, id)
	}

	return l, nil
}

func (l *Level) makeFloor() {
	size := l.cfg.LevelSize
	divisions := int(size / l.cfg.GridSize)

	l.renderInstances = append(l.renderInstances,
		Instance{
			Kind:  KindFloor,
			Size:  Vec3{X: size, Y: 1, Z: size},
			Color: ColorLightGray,
		},
		Instance{
			Kind:      KindFloorGrid,
			Position:  Vec3{Y: 2},
			Divisions: [2]int{divisions, divisions},
			CellSize:  l.cfg.GridSize,
			Color:     ColorWhite,
		},
	)
}

func (l *Level) makeStack(c Column) {
	for h := 0; h < StackHeight; h++ {
		l.makeCube(c, h)
	}
}

// makeCube places one cube centered in its grid column, shrunk by two units so neighboring
// cubes keep a visible seam, and lays a line grid over each of its four side faces.
func (l *Level) makeCube(c Column, height int) {
	grid := l.cfg.GridSize
	half := grid / 2
	x, y, z := float64(c.X), float64(height), float64(c.Z)

	center := Vec3{X: half + grid*x, Y: half + grid*y, Z: half + grid*z}
	edge := grid - 2

	cube := CubePlacement{Column: c, Height: height, Center: center, Size: edge}
	l.cubes = append(l.cubes, cube)
	l.boxes = append(l.boxes, CollisionBox{Center: center, HalfExtents: Vec3{X: half, Y: half, Z: half}})

	overlay := func(rot Rotation, pos Vec3) Instance {
		return Instance{
			Kind:      KindCubeGrid,
			Position:  pos,
			Divisions: [2]int{1, 1},
			CellSize:  grid - 1,
			Rotation:  rot,
			Color:     ColorWhite,
		}
	}

	l.renderInstances = append(l.renderInstances,
		Instance{
			Kind:     KindCube,
			Position: center,
			Size:     Vec3{X: edge, Y: edge, Z: edge},
			Color:    ColorGray,
		},
		overlay(Rotation{Axis: AxisX, Degrees: 90}, Vec3{X: center.X, Y: center.Y, Z: grid + grid*z}),
		overlay(Rotation{Axis: AxisX, Degrees: 270}, Vec3{X: center.X, Y: center.Y, Z: grid * z}),
		overlay(Rotation{Axis: AxisZ, Degrees: 90}, Vec3{X: grid + grid*x, Y: center.Y, Z: center.Z}),
		overlay(Rotation{Axis: AxisZ, Degrees: 270}, Vec3{X: grid * x, Y: center.Y, Z: center.Z}),
	)
}

// Columns returns the stack columns in placement order.
func (l *Level) Columns() []Column {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.columns)
}

// RenderInstances returns every drawable placement in draw order.
func (l *Level) RenderInstances() []Instance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.renderInstances)
}

// Cubes returns the obstacle cubes, three per stack from the ground up.
func (l *Level) Cubes() []CubePlacement {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.cubes)
}

// CollisionBoxes returns one box per cube, in cube order.
func (l *Level) CollisionBoxes() []CollisionBox {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.boxes)
}

// Bodies returns the physics handles registered for the collision boxes.
func (l *Level) Bodies() []BodyID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.bodies)
}

// Render hands the render instances to r.
func (l *Level) Render(r Renderer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return ErrDisposed
	}
	return r.Render(l.renderInstances)
}

// Dispose releases every collision body exactly once and clears both lists.
// Calling it again is a no-op.
func (l *Level) Dispose() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return nil
	}
	l.disposed = true

	var errs []error
	for _, id := range l.bodies {
		if err := l.physics.Dispose(id); err != nil {
			errs = append(errs, fmt.Errorf("disposing body %s: %w", id, err))
		}
	}

	l.bodies = nil
	l.boxes = nil
	l.cubes = nil
	l.renderInstances = nil
	return errors.Join(errs...)
}
