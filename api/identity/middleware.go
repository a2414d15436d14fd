package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/drone-maze/service"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextPilotClaims is the key used to store pilot claims in the Gin context.
	ContextPilotClaims = "pilotClaims"
)

// Authorize admits requests carrying a valid bearer token issued to a pilot and stores the
// token's claims on the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Tokens minted for anything other than a pilot carry no usable identity.
		if _, ok := pilotIDClaim(claims); !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextPilotClaims, claims)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", false
	}
	return token, true
}

func pilotIDClaim(claims map[string]interface{}) (uuid.UUID, bool) {
	raw, ok := claims[service.ClaimPilotID].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
