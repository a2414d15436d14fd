package flightapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/drone-maze/api/identity"
	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Leaderboard is what the controller needs from the leaderboard service.
type Leaderboard interface {
	Submit(ctx context.Context, levelID, pilotID uuid.UUID, d time.Duration) error
	Top(ctx context.Context, levelID uuid.UUID, n int) ([]service.Standing, error)
	Entries(ctx context.Context, levelID uuid.UUID) int64
}

// Controller handles flight submissions and leaderboard reads.
type Controller struct {
	leaderboard Leaderboard
}

// NewController creates a Controller.
func NewController(lb Leaderboard) (*Controller, error) {
	if lb == nil {
		return nil, errors.New("flight controller needs a leaderboard")
	}
	return &Controller{leaderboard: lb}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/levels/:ID/leaderboard", c.top)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/levels/:ID/flights", c.submit)
}

func (c *Controller) submit(ctx *gin.Context) {
	levelID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	pilotID, ok := identity.PilotID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request FlightRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = c.leaderboard.Submit(ctx.Request.Context(), levelID, pilotID, time.Duration(request.DurationMS)*time.Millisecond)
	switch {
	case errors.Is(err, service.ErrInvalidFlightTime):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrLevelNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		ctx.Status(http.StatusNoContent)
	}
}

func (c *Controller) top(ctx *gin.Context) {
	levelID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}

	standings, err := c.leaderboard.Top(ctx.Request.Context(), levelID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := &LeaderboardResponse{
		LevelID:   levelID.String(),
		Entries:   c.leaderboard.Entries(ctx.Request.Context(), levelID),
		Standings: make([]StandingResponse, 0, len(standings)),
	}
	for _, s := range standings {
		response.Standings = append(response.Standings, StandingResponse{
			Rank:       s.Rank,
			PilotID:    s.PilotID.String(),
			Callsign:   s.Callsign,
			DurationMS: s.Duration.Milliseconds(),
		})
	}
	ctx.JSON(http.StatusOK, response)
}
