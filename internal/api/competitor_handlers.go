// internal/api/competitor_handlers.go
// Competitor and club registration handlers

package api

import (
	"errors"
	"net/http"

	"o-event/internal/models"
	"o-event/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleCreateCompetitor registers a competitor and creates their runs.
func HandleCreateCompetitor(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var competitor models.Competitor
		if err := c.ShouldBindJSON(&competitor); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		if err := registration.CreateCompetitor(c.Request.Context(), &competitor); err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register competitor"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"competitor": competitor})
	}
}

// HandleListCompetitors lists competitors, optionally filtered by ?q=.
func HandleListCompetitors(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		competitors, err := registration.ListCompetitors(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list competitors"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"competitors": competitors, "count": len(competitors)})
	}
}

// HandleGetCompetitor retrieves one competitor.
func HandleGetCompetitor(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		competitor, err := registration.GetCompetitor(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Competitor not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"competitor": competitor})
	}
}

// HandleEditCompetitor applies a field/value record to a competitor.
// Unknown fields are ignored; the primary key cannot be overwritten.
func HandleEditCompetitor(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields map[string]string
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		competitor, err := registration.EditCompetitor(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			if err == services.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Competitor not found"})
				return
			}
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit competitor"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"competitor": competitor})
	}
}

// HandleImportCompetitors ingests the competitor CSV body.
func HandleImportCompetitors(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := registration.ImportCompetitorsCSV(c.Request.Context(), c.Request.Body)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "imported": count})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed", "imported": count})
			return
		}

		c.JSON(http.StatusOK, gin.H{"imported": count})
	}
}

// HandleImportClubs ingests the club CSV body.
func HandleImportClubs(registration *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := registration.ImportClubsCSV(c.Request.Context(), c.Request.Body)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"imported": count})
	}
}
