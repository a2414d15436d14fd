package level

import (
	"image/color"

	"github.com/google/uuid"
)

// Vec3 is a point or extent in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Axis is a rotation axis for overlay instances.
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

// Rotation turns an instance about one axis, in degrees.
type Rotation struct {
	Axis    Axis
	Degrees float64
}

// InstanceKind tells the renderer which mesh an Instance stands for.
type InstanceKind int

const (
	KindFloor     InstanceKind = iota // solid floor slab
	KindFloorGrid                     // line grid laid over the floor
	KindCube                          // obstacle cube
	KindCubeGrid                      // line grid laid over one face of a cube
)

// Material colors.
var (
	ColorLightGray = color.RGBA{R: 0xbf, G: 0xbf, B: 0xbf, A: 0xff}
	ColorGray      = color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}
	ColorWhite     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Instance is a drawable placement handed to a Renderer. Boxes use Size as their full extent;
// line grids use Divisions cells of CellSize each.
type Instance struct {
	Kind      InstanceKind
	Position  Vec3
	Size      Vec3
	Divisions [2]int
	CellSize  float64
	Rotation  Rotation
	Color     color.RGBA
}

// Column is the world grid column an obstacle stack stands on.
type Column struct {
	X, Z int
}

// CubePlacement is one obstacle cube of a stack.
type CubePlacement struct {
	Column Column
	Height int
	Center Vec3
	Size   float64 // edge length
}

// CollisionBox is an axis-aligned static collision volume.
type CollisionBox struct {
	Center      Vec3
	HalfExtents Vec3
}

// Contains reports whether p lies inside the box, faces included.
func (b CollisionBox) Contains(p Vec3) bool {
	return p.X >= b.Center.X-b.HalfExtents.X && p.X <= b.Center.X+b.HalfExtents.X &&
		p.Y >= b.Center.Y-b.HalfExtents.Y && p.Y <= b.Center.Y+b.HalfExtents.Y &&
		p.Z >= b.Center.Z-b.HalfExtents.Z && p.Z <= b.Center.Z+b.HalfExtents.Z
}

// BodyID identifies a collision body owned by a PhysicsWorld.
type BodyID = uuid.UUID
