package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-client/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.SessionEmitter, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/session-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), "session_test", "", "debug endpoint")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
