package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Tile is one position of a character grid.
type Tile byte

const (
	Wall Tile = 'X'
	Open Tile = '.'
)

var ErrMalformedCharGrid = errors.New("malformed character grid")

// CharGrid is the doubled-resolution rendering of a maze: odd rows and columns hold cell
// interiors, even ones hold walls and junctions.
type CharGrid struct {
	tiles [][]Tile
}

// Render draws a carved grid as a (2*height+1) x (2*width+1) character grid.
// Cell (row, col) lands on (2*row+1, 2*col+1).
func Render(g *Grid) *CharGrid {
	rows, cols := 2*g.height+1, 2*g.width+1
	tiles := make([][]Tile, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
		for c := range tiles[r] {
			tiles[r][c] = Wall
		}
	}

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			r, c := 2*row+1, 2*col+1
			tiles[r][c] = Open

			cell := g.cells[row][col]
			if row+1 < g.height && !cell.SouthWall {
				tiles[r+1][c] = Open
			}
			if col+1 < g.width && !cell.EastWall {
				tiles[r][c+1] = Open
			}
		}
	}

	return &CharGrid{tiles: tiles}
}

// ParseCharGrid reads a grid previously produced by CharGrid.String.
func ParseCharGrid(s string) (*CharGrid, error) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedCharGrid)
	}

	width := len(lines[0])
	tiles := make([][]Tile, len(lines))
	for r, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformedCharGrid, r, len(line), width)
		}
		tiles[r] = make([]Tile, width)
		for c := 0; c < width; c++ {
			t := Tile(line[c])
			if t != Wall && t != Open {
				return nil, fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrMalformedCharGrid, line[c], r, c)
			}
			tiles[r][c] = t
		}
	}

	return &CharGrid{tiles: tiles}, nil
}

// Rows returns the number of rows.
func (cg *CharGrid) Rows() int {
	return len(cg.tiles)
}

// Cols returns the number of columns.
func (cg *CharGrid) Cols() int {
	if len(cg.tiles) == 0 {
		return 0
	}
	return len(cg.tiles[0])
}

// At returns the tile at (row, col). Out-of-range positions read as Wall.
func (cg *CharGrid) At(row, col int) Tile {
	if row < 0 || row >= cg.Rows() || col < 0 || col >= cg.Cols() {
		return Wall
	}
	return cg.tiles[row][col]
}

// IsWall reports whether (row, col) is a wall.
func (cg *CharGrid) IsWall(row, col int) bool {
	return cg.At(row, col) == Wall
}

// WallCount counts wall tiles.
func (cg *CharGrid) WallCount() int {
	return cg.count(Wall)
}

// OpenCount counts open tiles.
func (cg *CharGrid) OpenCount() int {
	return cg.count(Open)
}

func (cg *CharGrid) count(t Tile) int {
	n := 0
	for _, row := range cg.tiles {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// Lines returns one string per row.
func (cg *CharGrid) Lines() []string {
	lines := make([]string, len(cg.tiles))
	for r, row := range cg.tiles {
		lines[r] = string(row)
	}
	return lines
}

// String returns the grid with one newline-terminated line per row.
func (cg *CharGrid) String() string {
	return strings.Join(cg.Lines(), "\n") + "\n"
}

// Connected reports whether every open tile is reachable from every other one through
// orthogonal steps over open tiles.
func (cg *CharGrid) Connected() bool {
	total := cg.OpenCount()
	if total == 0 {
		return true
	}

	var start [2]int
	found := false
	for r := 0; r < cg.Rows() && !found; r++ {
		for c := 0; c < cg.Cols(); c++ {
			if cg.tiles[r][c] == Open {
				start, found = [2]int{r, c}, true
				break
			}
		}
	}

	seen := mapset.New[[2]int]()
	pending := stack.New[[2]int]()
	seen.Put(start)
	pending.Push(start)
	for pending.Size() > 0 {
		cur := pending.Pop()
		for _, d := range directionDeltas {
			next := [2]int{cur[0] + d.Row, cur[1] + d.Col}
			if cg.At(next[0], next[1]) == Open && !seen.Has(next) {
				seen.Put(next)
				pending.Push(next)
			}
		}
	}

	return seen.Size() == total
}
