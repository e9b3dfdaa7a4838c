package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farm_market/internal/auth"
	"farm_market/internal/models"
)

const actorKey = "actor"

// TokenParser verifies a bearer token and returns the caller it names.
type TokenParser interface {
	Parse(token string) (*auth.Actor, error)
}

// RequireAuth ensures a valid JWT is present and stores the caller in the
// context for downstream handlers.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}

		actor, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role. It must
// run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}
		if actor.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied. " + string(role) + "s only"})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated caller, or nil outside RequireAuth.
func CurrentActor(c *gin.Context) *auth.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*auth.Actor)
	return actor
}
