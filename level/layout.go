package level

import (
	"github.com/beka-birhanu/drone-maze/maze"
)

const (
	scatterStacks = 80
	scatterRange  = 10
)

// MazeColumns lists a stack column for every wall tile of cg. The outermost ring of the grid
// is skipped unless coverBorder is set. Tile (row, col) maps to column
// (row - rows/2, col - cols/2); columns are listed column-major.
func MazeColumns(cg *maze.CharGrid, coverBorder bool) []Column {
	rows, cols := cg.Rows(), cg.Cols()
	lo, rowHi, colHi := 1, rows-1, cols-1
	if coverBorder {
		lo, rowHi, colHi = 0, rows, cols
	}

	var columns []Column
	for col := lo; col < colHi; col++ {
		for row := lo; row < rowHi; row++ {
			if cg.IsWall(row, col) {
				columns = append(columns, Column{X: row - rows/2, Z: col - cols/2})
			}
		}
	}
	return columns
}

// ScatterColumns places count stacks at random columns within +-10 of the origin, never on
// the three columns nearest the origin along either axis so the spawn point stays clear.
func ScatterColumns(src maze.Source, count int) []Column {
	if count <= 0 {
		count = scatterStacks
	}

	columns := make([]Column, 0, count)
	for i := 0; i < count; i++ {
		columns = append(columns, Column{X: scatterCoord(src), Z: scatterCoord(src)})
	}
	return columns
}

func scatterCoord(src maze.Source) int {
	for {
		v := src.Intn(2*scatterRange+1) - scatterRange
		if v < -1 || v > 1 {
			return v
		}
	}
}

// BuildMaze builds a level with a stack on every wall tile of cg.
func BuildMaze(cfg Config, cg *maze.CharGrid, physics PhysicsWorld) (*Level, error) {
	return Build(cfg, MazeColumns(cg, cfg.CoverBorder), physics)
}
