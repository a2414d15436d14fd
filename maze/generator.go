package maze

import (
	"math/rand"
	"time"
)

// Config describes one maze to generate.
type Config struct {
	Width, Height int

	Seed      int64  // Optional (0 = time-derived)
	Algorithm string // Optional ("" = backtracker)
}

// Result is a generated maze together with the seed that produced it.
type Result struct {
	Grid     *Grid
	CharGrid *CharGrid
	Seed     int64
}

// Generator carves mazes of a fixed size from a single random source.
type Generator struct {
	width, height int
	seed          int64
	carver        Carver
}

// NewGenerator validates cfg and prepares a generator. When src is nil a *rand.Rand seeded
// from cfg.Seed is created and owned by the generator; otherwise src is used as-is and
// cfg.Seed is only reported back.
func NewGenerator(cfg Config, src Source) (*Generator, error) {
	if err := ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if src == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		src = rand.New(rand.NewSource(seed))
	}

	carver, err := NewCarver(cfg.Algorithm, src)
	if err != nil {
		return nil, err
	}

	return &Generator{
		width:  cfg.Width,
		height: cfg.Height,
		seed:   seed,
		carver: carver,
	}, nil
}

// Seed returns the seed the generator's source was built from.
func (gen *Generator) Seed() int64 {
	return gen.seed
}

// Generate carves a new maze and renders it.
func (gen *Generator) Generate() (*Result, error) {
	grid, err := NewGrid(gen.width, gen.height)
	if err != nil {
		return nil, err
	}

	gen.carver.Carve(grid)

	return &Result{
		Grid:     grid,
		CharGrid: Render(grid),
		Seed:     gen.seed,
	}, nil
}
