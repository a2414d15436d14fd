package main

import (
	"os"
	"strings"
	"testing"

	"github.com/beka-birhanu/drone-maze/infrastruture/physics"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopDownMatchesCharGrid(t *testing.T) {
	raw, err := os.ReadFile("../../maze/testdata/first_choice_9x9.golden")
	require.NoError(t, err)
	cg, err := maze.ParseCharGrid(string(raw))
	require.NoError(t, err)

	cfg := level.DefaultConfig()
	cfg.CoverBorder = true
	lvl, err := level.BuildMaze(cfg, cg, physics.NewWorld())
	require.NoError(t, err)
	defer lvl.Dispose()

	view := newTopDown(cfg.GridSize)
	require.NoError(t, lvl.Render(view))

	// Park the drone off the map so only tiles are drawn.
	outside := level.Column{X: 100, Z: 100}
	lines := view.Lines(outside)
	require.Len(t, lines, cg.Rows())

	want := strings.NewReplacer("X", string(glyphStack), ".", string(glyphFloor)).Replace(strings.Join(cg.Lines(), "\n"))
	assert.Equal(t, want, strings.Join(lines, "\n"))
	assert.Equal(t, level.Column{X: -cg.Rows() / 2, Z: -cg.Cols() / 2}, view.Origin())
	assert.Equal(t, level.StackHeight, view.Height(view.Origin()))
}

func TestSessionMovesAroundStacks(t *testing.T) {
	s := &session{opts: options{dimension: 3, seed: 11, algorithm: maze.AlgorithmBacktracker, layout: layoutMaze, border: true}}
	require.NoError(t, s.build(11))
	defer s.close()

	start := s.drone
	assert.Equal(t, 0, s.view.Height(start))

	// The outer ring is solid, so flying north out of the top-left cell is blocked.
	assert.False(t, s.move(-1, 0))
	assert.Equal(t, start, s.drone)

	moved := s.move(1, 0) || s.move(0, 1)
	assert.True(t, moved, "the top-left cell has an open neighbor to the south or east")
	assert.NotEqual(t, start, s.drone)
	assert.Zero(t, s.view.Height(s.drone))
}

func TestSessionRebuildReleasesBodies(t *testing.T) {
	s := &session{opts: options{dimension: 5, algorithm: maze.AlgorithmWilson, layout: layoutMaze}}
	require.NoError(t, s.build(3))
	first := s.world
	require.NotZero(t, first.Live())

	require.NoError(t, s.build(4))
	assert.Zero(t, first.Live())
	assert.NotZero(t, s.world.Live())
	require.NoError(t, s.close())
	assert.Zero(t, s.world.Live())
}

func TestSessionScatterKeepsSpawnClear(t *testing.T) {
	s := &session{opts: options{layout: layoutScatter}}
	require.NoError(t, s.build(99))
	defer s.close()

	assert.Equal(t, level.Column{}, s.drone)
	assert.Zero(t, s.view.Height(s.drone))
	assert.Contains(t, s.status(), "seed 99")

	bad := &session{opts: options{layout: "spiral"}}
	assert.Error(t, bad.build(1))
}
