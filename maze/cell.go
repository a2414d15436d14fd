package maze

// Direction names one of the four grid-adjacent moves out of a cell.
type Direction int

// Directions in the order neighbors are enumerated. Carving depends on this order
// being stable, so it must not be derived from map iteration.
const (
	North Direction = iota
	South
	East
	West
)

var (
	directionNames  = [...]string{North: "North", South: "South", East: "East", West: "West"}
	directionDeltas = [...]CellPosition{
		North: {Row: -1, Col: 0},
		South: {Row: 1, Col: 0},
		East:  {Row: 0, Col: 1},
		West:  {Row: 0, Col: -1},
	}

	// Directions lists every direction in enumeration order.
	Directions = []Direction{North, South, East, West}
)

// String returns the direction's name.
func (d Direction) String() string {
	if d < North || d > West {
		return "Unknown"
	}
	return directionNames[d]
}

// Opposite returns the direction pointing back at the origin cell.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Cell represents a single cell in a maze grid.
// It records the walls on each side and whether carving has reached it.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.
	Visited   bool // Visited is set once carving has reached the cell.
}

// newClosedCell returns a cell with all four walls standing.
func newClosedCell() Cell {
	return Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
}

// HasWall reports whether the wall in direction d is standing.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	default:
		return c.WestWall
	}
}

// removeWall knocks down the wall in direction d.
func (c *Cell) removeWall(d Direction) {
	switch d {
	case North:
		c.NorthWall = false
	case South:
		c.SouthWall = false
	case East:
		c.EastWall = false
	default:
		c.WestWall = false
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Step returns the position one move away in direction d.
func (p CellPosition) Step(d Direction) CellPosition {
	delta := directionDeltas[d]
	return CellPosition{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Neighbor is an in-bounds cell adjacent to some origin cell.
type Neighbor struct {
	Direction Direction    // Direction of the move from the origin
	Position  CellPosition // Destination cell
}
