/*
Package maze provides tools for carving rectangular mazes and rendering them as character grids.

A Grid holds the cells of the maze and the passages carved between them. Carvers remove walls
until the open passages form a spanning tree of the grid; the default carver is an iterative
recursive backtracker, with Wilson's loop-erased random walk available as an alternative.

Render turns a carved Grid into a CharGrid at double resolution, where cell interiors sit on odd
indices and walls/junctions on even ones. Generator ties validation, carving, and rendering
together for a single level.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxMazeDimension = 255
)

var (
	ErrInvalidDimension = errors.New("maze dimensions must be odd and between 1 and 255")
	ErrOutOfBounds      = errors.New("cell is out of the maze")
	ErrNotAdjacent      = errors.New("cells are not grid-adjacent")
)

// Grid represents a rectangular maze consisting of cells with walls.
type Grid struct {
	width  int      // Width of the maze (number of columns)
	height int      // Height of the maze (number of rows)
	cells  [][]Cell // 2D grid of cells forming the maze
}

// ValidateDimensions checks that width and height can hold a maze.
func ValidateDimensions(width, height int) error {
	for _, d := range []int{width, height} {
		if d < 1 || d > maxMazeDimension || d%2 == 0 {
			return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
		}
	}
	return nil
}

// NewGrid initializes a grid of the given dimensions with every wall standing.
func NewGrid(width, height int) (*Grid, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = newClosedCell()
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBound reports whether pos lies inside the grid.
func (g *Grid) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.height && pos.Col >= 0 && pos.Col < g.width
}

// cell returns the cell at pos. Callers must stay in bounds.
func (g *Grid) cell(pos CellPosition) *Cell {
	if !g.InBound(pos) {
		panic(fmt.Sprintf("maze: cell (%d,%d) outside %dx%d grid", pos.Row, pos.Col, g.width, g.height))
	}
	return &g.cells[pos.Row][pos.Col]
}

// Cell returns a copy of the cell at pos.
func (g *Grid) Cell(pos CellPosition) (Cell, error) {
	if !g.InBound(pos) {
		return Cell{}, ErrOutOfBounds
	}
	return *g.cell(pos), nil
}

// Neighbors finds all in-bounds cells adjacent to pos, in North, South, East, West order.
func (g *Grid) Neighbors(pos CellPosition) []Neighbor {
	result := make([]Neighbor, 0, len(Directions))
	for _, dir := range Directions {
		next := pos.Step(dir)
		if g.InBound(next) {
			result = append(result, Neighbor{Direction: dir, Position: next})
		}
	}
	return result
}

// direction returns the direction leading from a to b if they are grid-adjacent.
func direction(a, b CellPosition) (Direction, bool) {
	for _, dir := range Directions {
		if a.Step(dir) == b {
			return dir, true
		}
	}
	return 0, false
}

// MarkOpen removes the wall between two adjacent cells on both sides.
func (g *Grid) MarkOpen(a, b CellPosition) error {
	if !g.InBound(a) || !g.InBound(b) {
		return ErrOutOfBounds
	}

	dir, ok := direction(a, b)
	if !ok {
		return fmt.Errorf("%w: (%d,%d) and (%d,%d)", ErrNotAdjacent, a.Row, a.Col, b.Row, b.Col)
	}

	g.cell(a).removeWall(dir)
	g.cell(b).removeWall(dir.Opposite())
	return nil
}

// IsOpen reports whether a passage leads out of pos in direction dir.
func (g *Grid) IsOpen(pos CellPosition, dir Direction) bool {
	if !g.InBound(pos) || !g.InBound(pos.Step(dir)) {
		return false
	}
	return !g.cell(pos).HasWall(dir)
}

// IsVisited reports whether carving has reached pos.
func (g *Grid) IsVisited(pos CellPosition) bool {
	return g.cell(pos).Visited
}

// MarkVisited flags pos as reached by carving.
func (g *Grid) MarkVisited(pos CellPosition) {
	g.cell(pos).Visited = true
}

// Passages counts the open passages between cells. Each passage is counted once.
func (g *Grid) Passages() int {
	count := 0
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := &g.cells[row][col]
			if row+1 < g.height && !c.SouthWall {
				count++
			}
			if col+1 < g.width && !c.EastWall {
				count++
			}
		}
	}
	return count
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for row := 0; row < g.height; row++ {
		cellRow := "|"
		wallRow := "+"
		for col := 0; col < g.width; col++ {
			c := g.cells[row][col]
			if c.EastWall {
				cellRow += "   |"
			} else {
				cellRow += "    "
			}
			if c.SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
