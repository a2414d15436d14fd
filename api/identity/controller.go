package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityServer handles pilot registration, login, and profile lookups.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.GET("/rules", c.rules)
		auth.POST("/register", c.registerPilot)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/pilots/me", c.me)
}

func (c *IdentityServer) rules(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dmn.PilotRules())
}

// registerPilot creates a pilot. Rejected callsigns and passwords are answered with the
// rules they broke so clients can show them.
func (c *IdentityServer) registerPilot(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error(), Rules: rulesRef()})
		return
	}

	err := c.authService.Register(request.Callsign, request.Password)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"message": "Pilot registered successfully"})
	case dmn.IsValidationError(err):
		ctx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error(), Rules: rulesRef()})
	case errors.Is(err, dmn.ErrCallsignTaken):
		ctx.JSON(http.StatusConflict, &ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
	}
}

// login signs a pilot in and returns a bearer token.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	pilot, token, err := c.authService.SignIn(request.Callsign, request.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, &ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &AuthResponse{
		ID:       pilot.ID.String(),
		Callsign: pilot.Callsign,
		Token:    token,
	})
}

// me returns the profile of the pilot the bearer token was issued to.
func (c *IdentityServer) me(ctx *gin.Context) {
	id, ok := PilotID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	pilot, err := c.authService.Pilot(id)
	switch {
	case errors.Is(err, dmn.ErrPilotNotFound):
		// The account is gone but the token has not expired yet.
		ctx.JSON(http.StatusNotFound, &ErrorResponse{Error: err.Error()})
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusOK, &PilotResponse{ID: pilot.ID.String(), Callsign: pilot.Callsign})
	}
}

func rulesRef() *dmn.CallsignRules {
	rules := dmn.PilotRules()
	return &rules
}

// PilotID returns the pilot id Authorize stored on the context.
func PilotID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Get(ContextPilotClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	return pilotIDClaim(claims)
}
