package levelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/level"
	"github.com/beka-birhanu/drone-maze/maze"
	"github.com/beka-birhanu/drone-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLevels struct {
	last   service.GenerateRequest
	record *dmn.LevelRecord
	err    error
}

func (s *stubLevels) Generate(_ context.Context, req service.GenerateRequest) (*dmn.LevelRecord, error) {
	s.last = req
	return s.record, s.err
}

func (s *stubLevels) Preview(_ context.Context, req service.GenerateRequest) (*maze.CharGrid, service.GenerateRequest, error) {
	s.last = req
	if s.err != nil {
		return nil, req, s.err
	}
	cg, err := maze.ParseCharGrid("XXX\nX.X\nXXX\n")
	req.Seed = 99
	return cg, req, err
}

func (s *stubLevels) ByID(_ context.Context, id uuid.UUID) (*dmn.LevelRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record == nil || s.record.ID != id {
		return nil, dmn.ErrLevelNotFound
	}
	return s.record, nil
}

func (s *stubLevels) Placements(_ context.Context, id uuid.UUID) (*service.Placements, error) {
	if s.record == nil || s.record.ID != id {
		return nil, dmn.ErrLevelNotFound
	}
	return &service.Placements{
		LevelID: id,
		Columns: []level.Column{{X: -1, Z: 2}},
		Cubes: []level.CubePlacement{
			{Column: level.Column{X: -1, Z: 2}, Height: 0, Center: level.Vec3{X: -1000, Y: 1000, Z: 5000}, Size: 1998},
		},
		Boxes:           []level.CollisionBox{{HalfExtents: level.Vec3{X: 1000, Y: 1000, Z: 1000}}},
		RenderInstances: 7,
	}, nil
}

func newTestEngine(t *testing.T, levels LevelService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := NewController(levels)
	require.NoError(t, err)

	r := gin.New()
	c.RegisterPublic(r.Group("/api/v1"))
	return r
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerate(t *testing.T) {
	rec := &dmn.LevelRecord{
		ID:        uuid.New(),
		Dimension: 3,
		Seed:      5,
		Algorithm: maze.AlgorithmWilson,
		Grid:      []string{"XXX", "X.X", "XXX"},
		Walls:     8,
		CreatedAt: time.Unix(0, 0).UTC(),
	}
	levels := &stubLevels{record: rec}
	r := newTestEngine(t, levels)

	w := serve(r, http.MethodPost, "/api/v1/levels", []byte(`{"dimension":3,"seed":5,"algorithm":"wilson"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, service.GenerateRequest{Dimension: 3, Seed: 5, Algorithm: "wilson"}, levels.last)

	var got LevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, rec.ID.String(), got.ID)
	assert.Equal(t, rec.Grid, got.Grid)
	assert.Equal(t, 8, got.Walls)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "malformed body", body: `{"dimension":`, want: http.StatusBadRequest},
		{name: "even dimension", body: `{"dimension":4}`, err: maze.ErrInvalidDimension, want: http.StatusBadRequest},
		{name: "unknown algorithm", body: `{}`, err: maze.ErrUnknownAlgorithm, want: http.StatusBadRequest},
		{name: "storage failure", body: `{}`, err: errors.New("mongo down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(t, &stubLevels{err: tt.err})
			w := serve(r, http.MethodPost, "/api/v1/levels", []byte(tt.body))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPreview(t *testing.T) {
	levels := &stubLevels{}
	r := newTestEngine(t, levels)

	w := serve(r, http.MethodGet, "/api/v1/previews?dimension=1&algorithm=backtracker", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, levels.last.Dimension)

	var got PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(99), got.Seed)
	assert.Equal(t, []string{"XXX", "X.X", "XXX"}, got.Grid)
}

func TestLookups(t *testing.T) {
	rec := &dmn.LevelRecord{ID: uuid.New(), Dimension: 3}
	r := newTestEngine(t, &stubLevels{record: rec})

	w := serve(r, http.MethodGet, "/api/v1/levels/"+rec.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/levels/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/levels/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/levels/"+rec.ID.String()+"/placements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got PlacementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Stacks)
	require.Len(t, got.Cubes, 1)
	assert.Equal(t, [2]int{-1, 2}, got.Cubes[0].Column)
	assert.Equal(t, 5000.0, got.Cubes[0].Center.Z)
	assert.Equal(t, 7, got.RenderInstances)
}
