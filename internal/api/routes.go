// internal/api/routes.go
// Central route registration for all API endpoints

package api

import (
	"o-event/internal/middleware"
	"o-event/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication-related routes
func RegisterAuthRoutes(router *gin.RouterGroup, services *services.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", HandleLogin(services.Auth))
		auth.POST("/logout", middleware.RequireAuth(services.Auth), HandleLogout(services.Auth))
		auth.POST("/refresh", HandleRefreshToken(services.Auth))
		auth.PUT("/password", middleware.RequireAuth(services.Auth), HandleChangePassword(services.Auth))
	}
}

// RegisterIngestionRoutes registers the readout ingestion and kiosk routes.
// Both are open: readout stations and kiosk displays carry no credentials.
func RegisterIngestionRoutes(router *gin.RouterGroup, services *services.Container) {
	router.POST("/card", HandleCardReadout(services.Card))
	router.GET("/results", HandleKioskResults(services.Event, services.Results))
	router.GET("/results/overall", HandleMultiDayStandings(services.Results))
}

// RegisterCompetitorRoutes registers registration-desk routes
func RegisterCompetitorRoutes(router *gin.RouterGroup, services *services.Container) {
	competitors := router.Group("/competitors")
	competitors.Use(middleware.RequireAuth(services.Auth))
	{
		competitors.GET("", HandleListCompetitors(services.Registration))
		competitors.POST("", HandleCreateCompetitor(services.Registration))
		competitors.GET("/:id", HandleGetCompetitor(services.Registration))
		competitors.PUT("/:id", HandleEditCompetitor(services.Registration))
		competitors.POST("/import", HandleImportCompetitors(services.Registration))
	}

	clubs := router.Group("/clubs")
	clubs.Use(middleware.RequireAuth(services.Auth))
	{
		clubs.POST("/import", HandleImportClubs(services.Registration))
	}
}

// RegisterAdminRoutes registers event-setup and administration routes
func RegisterAdminRoutes(router *gin.RouterGroup, services *services.Container) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAuth(services.Auth))
	admin.Use(middleware.RequireRole("admin", "organizer"))
	{
		admin.POST("/staff", HandleRegister(services.Auth))
		admin.GET("/config", HandleGetConfig(services.Event))
		admin.PUT("/config", HandleSetConfig(services.Event))
		admin.PUT("/day/:day", HandleSetCurrentDay(services.Event))
		admin.GET("/stages", HandleListStages(services.Event))
		admin.POST("/stages/:day/courses/import", HandleImportCourseData(services.Event))
		admin.GET("/stages/:day/results/export", HandleExportResultList(services.Event))
		admin.POST("/stages/:day/start-slots", HandleAssignStartSlots(services.Schedule))
		admin.POST("/cards/:id/reprocess", HandleReprocessCard(services.Card))
		admin.GET("/stats", HandleGetPlatformStats(services.Analytics))
		admin.GET("/stats/readouts", HandleGetReadoutStats(services.Analytics, services.Event))
	}
}
