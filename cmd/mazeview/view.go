package main

import (
	"math"
	"strings"

	"github.com/beka-birhanu/drone-maze/level"
	"github.com/zyedidia/generic/mapset"
)

const (
	glyphStack = '#'
	glyphFloor = '.'
	glyphDrone = '@'
)

// topDown renders a level as seen from above: one glyph per grid column.
type topDown struct {
	grid       float64
	stacks     mapset.Set[level.Column]
	heights    map[level.Column]int
	minX, maxX int
	minZ, maxZ int
}

func newTopDown(grid float64) *topDown {
	return &topDown{
		grid:    grid,
		stacks:  mapset.New[level.Column](),
		heights: make(map[level.Column]int),
	}
}

// Render collects the cube instances of a level. Overlays and the floor carry no column
// information of their own and are ignored.
func (v *topDown) Render(instances []level.Instance) error {
	v.stacks = mapset.New[level.Column]()
	v.heights = make(map[level.Column]int)
	v.minX, v.maxX, v.minZ, v.maxZ = 0, 0, 0, 0

	for _, in := range instances {
		if in.Kind != level.KindCube {
			continue
		}
		c := v.column(in.Position)
		v.stacks.Put(c)
		v.heights[c]++
		v.minX, v.maxX = min(v.minX, c.X), max(v.maxX, c.X)
		v.minZ, v.maxZ = min(v.minZ, c.Z), max(v.maxZ, c.Z)
	}
	return nil
}

// column returns the grid column containing world point p.
func (v *topDown) column(p level.Vec3) level.Column {
	return level.Column{
		X: int(math.Floor(p.X / v.grid)),
		Z: int(math.Floor(p.Z / v.grid)),
	}
}

// center returns the world point at the middle of column c, one half grid above the floor.
func (v *topDown) center(c level.Column) level.Vec3 {
	half := v.grid / 2
	return level.Vec3{X: half + v.grid*float64(c.X), Y: half, Z: half + v.grid*float64(c.Z)}
}

// Height reports how many cubes stand on c.
func (v *topDown) Height(c level.Column) int {
	return v.heights[c]
}

// Lines draws the collected stacks with X growing downward and Z to the right, the same
// orientation as the character grid the maze came from.
func (v *topDown) Lines(drone level.Column) []string {
	lines := make([]string, 0, v.maxX-v.minX+1)
	var b strings.Builder
	for x := v.minX; x <= v.maxX; x++ {
		b.Reset()
		for z := v.minZ; z <= v.maxZ; z++ {
			c := level.Column{X: x, Z: z}
			switch {
			case c == drone:
				b.WriteRune(glyphDrone)
			case v.stacks.Has(c):
				b.WriteRune(glyphStack)
			default:
				b.WriteRune(glyphFloor)
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Origin returns the column drawn at the top-left of Lines.
func (v *topDown) Origin() level.Column {
	return level.Column{X: v.minX, Z: v.minZ}
}
