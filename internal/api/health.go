// internal/api/health.go
// Health check endpoint for monitoring

package api

import (
	"context"
	"net/http"
	"time"

	"o-event/internal/config"
	"o-event/internal/database"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns a health check handler that also pings the stores.
func HealthCheck(cfg *config.Config, db *database.Connections) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		stores := "operational"
		status := http.StatusOK
		if err := db.HealthCheck(ctx); err != nil {
			stores = err.Error()
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":      "healthy",
			"environment": cfg.Environment,
			"version":     "1.0.0",
			"services": gin.H{
				"api":       "operational",
				"stores":    stores,
				"live_push": cfg.Features.EnableLivePush,
				"printer":   cfg.Features.EnablePrinter,
			},
		})
	}
}
