// Command mazeview generates a level and lets you fly a drone marker through it in the
// terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/drone-maze/infrastruture/physics"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/maze"
	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
)

const (
	layoutMaze    = "maze"
	layoutScatter = "scatter"
)

type options struct {
	dimension int
	seed      int64
	algorithm string
	layout    string
	border    bool
	print     bool
}

// session is one generated level and the drone flying through it.
type session struct {
	opts  options
	cfg   level.Config
	world *physics.World
	level *level.Level
	view  *topDown
	drone level.Column
	seed  int64
}

func main() {
	var opts options
	flag.IntVar(&opts.dimension, "dim", 9, "maze dimension in cells (odd, 1-255)")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	flag.StringVar(&opts.algorithm, "alg", maze.AlgorithmBacktracker, "carving algorithm (backtracker, wilson)")
	flag.StringVar(&opts.layout, "layout", layoutMaze, "obstacle layout (maze, scatter)")
	flag.BoolVar(&opts.border, "border", false, "place stacks on the outer ring of the maze")
	flag.BoolVar(&opts.print, "print", false, "print the level and exit")
	flag.Parse()

	s := &session{opts: opts}
	if err := s.build(opts.seed); err != nil {
		color.Error.Println(err)
		os.Exit(1)
	}
	defer s.close()

	if opts.print {
		s.print()
		return
	}

	if err := s.run(); err != nil {
		color.Error.Println(err)
		os.Exit(1)
	}
}

// build replaces the current level with a freshly generated one.
func (s *session) build(seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := level.DefaultConfig()
	cfg.CoverBorder = s.opts.border
	world := physics.NewWorld()

	var (
		lvl   *level.Level
		drone level.Column
		err   error
	)
	switch s.opts.layout {
	case layoutMaze:
		gen, genErr := maze.NewGenerator(maze.Config{
			Width:     s.opts.dimension,
			Height:    s.opts.dimension,
			Seed:      seed,
			Algorithm: s.opts.algorithm,
		}, nil)
		if genErr != nil {
			return genErr
		}
		res, genErr := gen.Generate()
		if genErr != nil {
			return genErr
		}
		lvl, err = level.BuildMaze(cfg, res.CharGrid, world)
		// Tile (1, 1) is always an open cell.
		drone = level.Column{X: 1 - res.CharGrid.Rows()/2, Z: 1 - res.CharGrid.Cols()/2}
	case layoutScatter:
		lvl, err = level.Build(cfg, level.ScatterColumns(rand.New(rand.NewSource(seed)), 0), world)
	default:
		return fmt.Errorf("unknown layout %q", s.opts.layout)
	}
	if err != nil {
		return err
	}

	view := newTopDown(cfg.GridSize)
	if err := lvl.Render(view); err != nil {
		return errors.Join(err, lvl.Dispose())
	}

	if err := s.close(); err != nil {
		return errors.Join(err, lvl.Dispose())
	}
	s.cfg, s.world, s.level, s.view, s.drone, s.seed = cfg, world, lvl, view, drone, seed
	return nil
}

func (s *session) close() error {
	if s.level == nil {
		return nil
	}
	return s.level.Dispose()
}

// move shifts the drone one column unless a collision box is in the way.
func (s *session) move(dx, dz int) bool {
	next := level.Column{X: s.drone.X + dx, Z: s.drone.Z + dz}
	if s.world.Hits(s.view.center(next)).Size() > 0 {
		return false
	}
	s.drone = next
	return true
}

func (s *session) status() string {
	return fmt.Sprintf("seed %d  %s/%s  stacks %d  bodies %d  drone (%d,%d)",
		s.seed, s.opts.layout, s.opts.algorithm, len(s.level.Columns()), s.world.Live(), s.drone.X, s.drone.Z)
}

func (s *session) print() {
	for _, line := range s.view.Lines(s.drone) {
		for _, r := range line {
			switch r {
			case glyphStack:
				color.Gray.Print(string(r))
			case glyphDrone:
				color.Yellow.Print(string(r))
			default:
				fmt.Print(string(r))
			}
		}
		fmt.Println()
	}
	color.Cyan.Println(s.status())
}

func (s *session) run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		s.draw(screen)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyUp:
				s.move(-1, 0)
			case tcell.KeyDown:
				s.move(1, 0)
			case tcell.KeyLeft:
				s.move(0, -1)
			case tcell.KeyRight:
				s.move(0, 1)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return nil
				case 'r':
					if err := s.build(0); err != nil {
						return err
					}
				}
			}
		case nil:
			return nil
		}
	}
}

func (s *session) draw(screen tcell.Screen) {
	screen.Clear()

	stackStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	droneStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for y, line := range s.view.Lines(s.drone) {
		x := 0
		for _, r := range line {
			st := floorStyle
			switch r {
			case glyphStack:
				st = stackStyle
			case glyphDrone:
				st = droneStyle
			}
			// Two columns per tile keep the map roughly square.
			screen.SetContent(x, y+2, r, nil, st)
			screen.SetContent(x+1, y+2, ' ', nil, st)
			x += 2
		}
	}

	putText(screen, 0, 0, s.status(), tcell.StyleDefault.Foreground(tcell.ColorTeal))
	putText(screen, 0, 1, "arrows fly  r regenerate  q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	screen.Show()
}

func putText(screen tcell.Screen, x, y int, s string, st tcell.Style) {
	w, _ := screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		screen.SetContent(x, y, r, nil, st)
		x++
	}
}
