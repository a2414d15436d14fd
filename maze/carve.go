package maze

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/stack"
)

// Carving algorithm names accepted by NewCarver.
const (
	AlgorithmBacktracker = "backtracker"
	AlgorithmWilson      = "wilson"
)

var ErrUnknownAlgorithm = errors.New("unknown carving algorithm")

// Source is the random source a carver draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Carver removes walls from a freshly built grid until every cell is connected.
type Carver interface {
	Carve(g *Grid)
}

// NewCarver returns the carver registered under name, drawing from src.
// An empty name selects the backtracker.
func NewCarver(name string, src Source) (Carver, error) {
	switch name {
	case "", AlgorithmBacktracker:
		return NewBacktracker(src), nil
	case AlgorithmWilson:
		return NewWilson(src), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// open removes the wall leading out of pos in direction dir and its mirror on the neighbor.
func (g *Grid) open(pos CellPosition, dir Direction) {
	g.cell(pos).removeWall(dir)
	g.cell(pos.Step(dir)).removeWall(dir.Opposite())
}

// Backtracker carves with a randomized depth-first traversal kept on an explicit stack.
type Backtracker struct {
	src Source
}

// NewBacktracker creates a backtracking carver drawing from src.
func NewBacktracker(src Source) *Backtracker {
	return &Backtracker{src: src}
}

// Carve visits every cell exactly once as the top of the stack and opens one passage per
// newly reached cell, leaving width*height-1 passages.
func (b *Backtracker) Carve(g *Grid) {
	start := CellPosition{Row: b.src.Intn(g.height), Col: b.src.Intn(g.width)}
	g.MarkVisited(start)

	cells := stack.New[CellPosition]()
	cells.Push(start)

	candidates := make([]Neighbor, 0, len(Directions))
	for cells.Size() > 0 {
		current := cells.Peek()

		candidates = candidates[:0]
		for _, nbr := range g.Neighbors(current) {
			if !g.IsVisited(nbr.Position) {
				candidates = append(candidates, nbr)
			}
		}

		if len(candidates) == 0 {
			cells.Pop()
			continue
		}

		next := candidates[b.src.Intn(len(candidates))]
		g.open(current, next.Direction)
		g.MarkVisited(next.Position)
		cells.Push(next.Position)
	}
}

// Wilson carves with loop-erased random walks, producing a uniform spanning tree.
type Wilson struct {
	src Source
}

// NewWilson creates a Wilson carver drawing from src.
func NewWilson(src Source) *Wilson {
	return &Wilson{src: src}
}

// Carve seeds the tree with one random cell, then repeatedly walks from an unvisited cell until
// the walk hits the tree and grafts the loop-erased path onto it.
func (w *Wilson) Carve(g *Grid) {
	total := g.width * g.height
	start := CellPosition{Row: w.src.Intn(g.height), Col: w.src.Intn(g.width)}
	g.MarkVisited(start)
	visited := 1

	for visited < total {
		walkStart := w.randomUnvisited(g, total-visited)

		// Only the last exit taken from each cell is kept, which erases loops.
		exits := make(map[CellPosition]Direction)
		cell := walkStart
		for !g.IsVisited(cell) {
			nbrs := g.Neighbors(cell)
			nbr := nbrs[w.src.Intn(len(nbrs))]
			exits[cell] = nbr.Direction
			cell = nbr.Position
		}

		for cell := walkStart; !g.IsVisited(cell); {
			dir := exits[cell]
			g.open(cell, dir)
			g.MarkVisited(cell)
			visited++
			cell = cell.Step(dir)
		}
	}
}

// randomUnvisited picks one of the remaining unvisited cells in row-major order.
func (w *Wilson) randomUnvisited(g *Grid, remaining int) CellPosition {
	target := w.src.Intn(remaining)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if g.cells[row][col].Visited {
				continue
			}
			if target == 0 {
				return CellPosition{Row: row, Col: col}
			}
			target--
		}
	}
	panic("maze: unvisited cell count out of sync")
}
