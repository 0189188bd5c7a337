package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

const actorKey = "actor"

// Actor resolves the calling identity from the gateway-injected headers.
// Requests without both headers are rejected before reaching a handler.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-Id")
		role := c.GetHeader("X-User-Role")
		if id == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing user identity headers",
				},
			})
			return
		}
		c.Set(actorKey, models.Actor{ID: id, Role: models.Role(role)})
		c.Next()
	}
}

// ActorFrom returns the actor stored by the Actor middleware.
func ActorFrom(c *gin.Context) models.Actor {
	v, _ := c.Get(actorKey)
	actor, _ := v.(models.Actor)
	return actor
}
