// internal/api/card_handlers.go
// Punch-card ingestion and kiosk results handlers

package api

import (
	"errors"
	"net/http"
	"strconv"

	"o-event/internal/models"
	"o-event/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleCardReadout handles POST /card: one punch-card readout.
func HandleCardReadout(cardService *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var readout models.RawReadout
		if err := c.ShouldBindJSON(&readout); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid readout format", "details": err.Error()})
			return
		}

		result, err := cardService.Process(c.Request.Context(), readout)
		if err != nil {
			if errors.Is(err, services.ErrIntegrity) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process readout"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleReprocessCard handles POST /cards/:id/reprocess: manual re-run of
// the readout protocol against a stored card.
func HandleReprocessCard(cardService *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := cardService.Reprocess(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reprocess card"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleKioskResults handles GET /results: the current day's results keyed
// by group, covering every non-DNS run.
func HandleKioskResults(eventService *services.EventService, resultsService *services.ResultsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := eventService.CurrentDay(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Current day not configured"})
			return
		}
		if v := c.Query("day"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				day = parsed
			}
		}

		results, err := resultsService.KioskResults(c.Request.Context(), day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

// HandleMultiDayStandings handles GET /results/overall.
func HandleMultiDayStandings(resultsService *services.ResultsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "3"))
		if days < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be positive"})
			return
		}

		standings, err := resultsService.MultiDayStandings(c.Request.Context(), days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load standings"})
			return
		}

		c.JSON(http.StatusOK, standings)
	}
}
