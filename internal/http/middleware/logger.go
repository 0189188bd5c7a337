package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// Logger emits one structured line per request, after the handler chain
// has run. The actor role is included once the Actor middleware has
// resolved it; unauthenticated routes log without it.
func Logger(l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		rid, _ := c.Get(RequestIDHeader)
		evt := l.Info().
			Str("request_id", rid.(string)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency)
		if v, ok := c.Get(actorKey); ok {
			if actor, ok := v.(models.Actor); ok {
				evt = evt.Str("role", string(actor.Role))
			}
		}
		evt.Msg("request")
	}
}
