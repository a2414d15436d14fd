package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/drone-maze/api/identity"
	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeaderboard struct {
	levelID   uuid.UUID
	submitted map[uuid.UUID]time.Duration
	limit     int
}

func (s *stubLeaderboard) Submit(_ context.Context, levelID, pilotID uuid.UUID, d time.Duration) error {
	if d <= 0 {
		return service.ErrInvalidFlightTime
	}
	if levelID != s.levelID {
		return dmn.ErrLevelNotFound
	}
	s.submitted[pilotID] = d
	return nil
}

func (s *stubLeaderboard) Top(_ context.Context, _ uuid.UUID, n int) ([]service.Standing, error) {
	s.limit = n
	var out []service.Standing
	for id, d := range s.submitted {
		out = append(out, service.Standing{Rank: len(out) + 1, PilotID: id, Callsign: "maverick", Duration: d})
	}
	return out, nil
}

func (s *stubLeaderboard) Entries(context.Context, uuid.UUID) int64 {
	return int64(len(s.submitted))
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "token", nil
}

func (s *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "token" {
		return nil, assert.AnError
	}
	return s.claims, nil
}

func newTestEngine(t *testing.T, lb Leaderboard, claims map[string]interface{}) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := NewController(lb)
	require.NoError(t, err)

	r := gin.New()
	c.RegisterPublic(r.Group("/api/v1"))
	protected := r.Group("/api/v1")
	protected.Use(identity.Authorize(&stubTokenizer{claims: claims}))
	c.RegisterProtected(protected)
	return r
}

func serve(r *gin.Engine, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFlights(t *testing.T) {
	levelID := uuid.New()
	pilotID := uuid.New()
	lb := &stubLeaderboard{levelID: levelID, submitted: make(map[uuid.UUID]time.Duration)}
	r := newTestEngine(t, lb, map[string]interface{}{service.ClaimPilotID: pilotID.String()})
	flights := "/api/v1/levels/" + levelID.String() + "/flights"

	t.Run("requires a token", func(t *testing.T) {
		w := serve(r, http.MethodPost, flights, "", []byte(`{"duration_ms":1500}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		w = serve(r, http.MethodPost, flights, "forged", []byte(`{"duration_ms":1500}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("records the pilot from the token", func(t *testing.T) {
		w := serve(r, http.MethodPost, flights, "token", []byte(`{"duration_ms":1500}`))
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1500*time.Millisecond, lb.submitted[pilotID])
	})

	t.Run("rejects bad submissions", func(t *testing.T) {
		w := serve(r, http.MethodPost, flights, "token", []byte(`{"duration_ms":-3}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = serve(r, http.MethodPost, "/api/v1/levels/"+uuid.NewString()+"/flights", "token", []byte(`{"duration_ms":10}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = serve(r, http.MethodPost, "/api/v1/levels/nope/flights", "token", []byte(`{"duration_ms":10}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("leaderboard is public", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/api/v1/levels/"+levelID.String()+"/leaderboard?limit=5", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, lb.limit)

		var got LeaderboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.Entries)
		require.Len(t, got.Standings, 1)
		assert.Equal(t, pilotID.String(), got.Standings[0].PilotID)
		assert.Equal(t, int64(1500), got.Standings[0].DurationMS)

		w = serve(r, http.MethodGet, "/api/v1/levels/"+levelID.String()+"/leaderboard?limit=ten", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMissingPilotClaim(t *testing.T) {
	levelID := uuid.New()
	lb := &stubLeaderboard{levelID: levelID, submitted: make(map[uuid.UUID]time.Duration)}
	r := newTestEngine(t, lb, map[string]interface{}{"callsign": "ghost"})

	w := serve(r, http.MethodPost, "/api/v1/levels/"+levelID.String()+"/flights", "token", []byte(`{"duration_ms":10}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, lb.submitted)
}
