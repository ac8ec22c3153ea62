// ========================================
// internal/middleware/maintenance.go
// Maintenance mode middleware

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaintenanceMode returns 503 when maintenance mode is enabled. Health
// checks and card readouts pass through: a readout refused mid-event is a
// competitor's run lost.
func MaintenanceMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/card" || strings.HasSuffix(path, "/card") {
			c.Next()
			return
		}

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Service temporarily unavailable for maintenance",
			"message": "We'll be back shortly!",
		})
		c.Abort()
	}
}
