// internal/api/admin_handlers.go
// Event setup and administration handlers

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"o-event/internal/models"
	"o-event/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleGetConfig returns every event configuration row.
func HandleGetConfig(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := eventService.GetConfig(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"config": cfg})
	}
}

// HandleSetConfig upserts one configuration row.
func HandleSetConfig(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cfg models.Config
		if err := c.ShouldBindJSON(&cfg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if err := eventService.SetConfig(c.Request.Context(), cfg); err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store configuration"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"config": cfg})
	}
}

// HandleSetCurrentDay switches the global current day.
func HandleSetCurrentDay(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := strconv.Atoi(c.Param("day"))
		if err != nil || day < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}

		if err := eventService.SetCurrentDay(c.Request.Context(), day); err != nil {
			if errors.Is(err, services.ErrNoStage) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set current day"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"current_day": day})
	}
}

// HandleListStages lists the event's stages.
func HandleListStages(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stages, err := eventService.ListStages(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stages": stages})
	}
}

// HandleImportCourseData ingests an IOF 3.0 CourseData document for a day.
func HandleImportCourseData(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := strconv.Atoi(c.Param("day"))
		if err != nil || day < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}

		parsed, err := eventService.ImportCourseData(c.Request.Context(), day, body)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"controls": len(parsed.Controls),
			"courses":  len(parsed.Courses),
		})
	}
}

// HandleExportResultList serves the IOF 3.0 ResultList document for a day.
func HandleExportResultList(eventService *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := strconv.Atoi(c.Param("day"))
		if err != nil || day < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}

		doc, err := eventService.ExportResultList(c.Request.Context(), day)
		if err != nil {
			if errors.Is(err, services.ErrNoStage) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
			return
		}

		c.Data(http.StatusOK, "application/xml", doc)
	}
}

// HandleAssignStartSlots runs the start-slot scheduler for a day. The seed
// defaults to the wall clock so repeated invocations reshuffle; passing an
// explicit seed reproduces a previous assignment.
func HandleAssignStartSlots(scheduleService *services.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := strconv.Atoi(c.Param("day"))
		if err != nil || day < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
			return
		}

		var req struct {
			ParallelStarts int    `json:"parallel_starts"`
			Seed           *int64 `json:"seed"`
		}
		c.ShouldBindJSON(&req)

		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}

		assignments, err := scheduleService.AssignDay(c.Request.Context(), day, req.ParallelStarts, seed)
		if err != nil {
			if errors.Is(err, services.ErrNoStage) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Scheduling failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"seed":        seed,
			"assignments": assignments,
		})
	}
}

// HandleGetPlatformStats serves event-wide statistics from the event log.
func HandleGetPlatformStats(analytics *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analytics.PlatformStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}

// HandleGetReadoutStats serves per-status readout counters for a day.
func HandleGetReadoutStats(analytics *services.AnalyticsService, eventService *services.EventService) gin.HandlerFunc {
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

		stats, err := analytics.ReadoutStats(c.Request.Context(), day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"day": day, "stats": stats})
	}
}
