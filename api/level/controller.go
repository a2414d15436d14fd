package levelapi

import (
	"context"
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/maze"
	"github.com/beka-birhanu/drone-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LevelService is what the controller needs from the level service.
type LevelService interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*dmn.LevelRecord, error)
	Preview(ctx context.Context, req service.GenerateRequest) (*maze.CharGrid, service.GenerateRequest, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.LevelRecord, error)
	Placements(ctx context.Context, id uuid.UUID) (*service.Placements, error)
}

// Controller handles level generation requests.
type Controller struct {
	levels LevelService
}

// NewController creates a Controller.
func NewController(levels LevelService) (*Controller, error) {
	if levels == nil {
		return nil, errors.New("level controller needs a level service")
	}
	return &Controller{levels: levels}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/previews", c.preview)

	levels := route.Group("/levels")
	{
		levels.POST("", c.generate)
		levels.GET("/:ID", c.byID)
		levels.GET("/:ID/placements", c.placements)
	}
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (c *Controller) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := c.levels.Generate(ctx.Request.Context(), request.toService())
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, newLevelResponse(rec))
}

func (c *Controller) preview(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cg, resolved, err := c.levels.Preview(ctx.Request.Context(), request.toService())
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, &PreviewResponse{
		Dimension: resolved.Dimension,
		Seed:      resolved.Seed,
		Algorithm: resolved.Algorithm,
		Grid:      cg.Lines(),
	})
}

func (c *Controller) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	rec, err := c.levels.ByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newLevelResponse(rec))
}

func (c *Controller) placements(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	p, err := c.levels.Placements(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, newPlacementsResponse(p))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, maze.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, dmn.ErrLevelNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
