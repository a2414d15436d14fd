// Package levelapi exposes maze level generation over HTTP.
package levelapi

import (
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/service"
)

// GenerateRequest selects the maze to generate. Omitted fields take server defaults.
type GenerateRequest struct {
	Dimension int    `json:"dimension" form:"dimension"`
	Seed      int64  `json:"seed" form:"seed"`
	Algorithm string `json:"algorithm" form:"algorithm"`
}

func (r GenerateRequest) toService() service.GenerateRequest {
	return service.GenerateRequest{
		Dimension: r.Dimension,
		Seed:      r.Seed,
		Algorithm: r.Algorithm,
	}
}

// LevelResponse describes a stored level.
type LevelResponse struct {
	ID        string    `json:"id"`
	Dimension int       `json:"dimension"`
	Seed      int64     `json:"seed"`
	Algorithm string    `json:"algorithm"`
	Grid      []string  `json:"grid"`
	Walls     int       `json:"walls"`
	CreatedAt time.Time `json:"created_at"`
}

func newLevelResponse(rec *dmn.LevelRecord) *LevelResponse {
	return &LevelResponse{
		ID:        rec.ID.String(),
		Dimension: rec.Dimension,
		Seed:      rec.Seed,
		Algorithm: rec.Algorithm,
		Grid:      rec.Grid,
		Walls:     rec.Walls,
		CreatedAt: rec.CreatedAt,
	}
}

// PreviewResponse is an unsaved character grid.
type PreviewResponse struct {
	Dimension int      `json:"dimension"`
	Seed      int64    `json:"seed"`
	Algorithm string   `json:"algorithm"`
	Grid      []string `json:"grid"`
}

// Vec3 is a point in world units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func newVec3(v level.Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// CubeResponse is one placed cube.
type CubeResponse struct {
	Column [2]int  `json:"column"`
	Height int     `json:"height"`
	Center Vec3    `json:"center"`
	Size   float64 `json:"size"`
}

// BoxResponse is one collision box.
type BoxResponse struct {
	Center      Vec3 `json:"center"`
	HalfExtents Vec3 `json:"half_extents"`
}

// PlacementsResponse lists the obstacles of a built level.
type PlacementsResponse struct {
	LevelID         string         `json:"level_id"`
	Stacks          int            `json:"stacks"`
	Cubes           []CubeResponse `json:"cubes"`
	Boxes           []BoxResponse  `json:"boxes"`
	RenderInstances int            `json:"render_instances"`
}

func newPlacementsResponse(p *service.Placements) *PlacementsResponse {
	res := &PlacementsResponse{
		LevelID:         p.LevelID.String(),
		Stacks:          len(p.Columns),
		Cubes:           make([]CubeResponse, 0, len(p.Cubes)),
		Boxes:           make([]BoxResponse, 0, len(p.Boxes)),
		RenderInstances: p.RenderInstances,
	}
	for _, c := range p.Cubes {
		res.Cubes = append(res.Cubes, CubeResponse{
			Column: [2]int{c.Column.X, c.Column.Z},
			Height: c.Height,
			Center: newVec3(c.Center),
			Size:   c.Size,
		})
	}
	for _, b := range p.Boxes {
		res.Boxes = append(res.Boxes, BoxResponse{
			Center:      newVec3(b.Center),
			HalfExtents: newVec3(b.HalfExtents),
		})
	}
	return res
}
