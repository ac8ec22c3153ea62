// internal/server/server.go
// HTTP server wiring: router, middleware chain and route registration.

package server

import (
	"context"
	"log"
	"net/http"

	"o-event/internal/api"
	"o-event/internal/config"
	"o-event/internal/database"
	"o-event/internal/live"
	"o-event/internal/middleware"
	"o-event/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server bundles the HTTP listener with its dependency graph.
type Server struct {
	httpServer *http.Server
	services   *services.Container
	hub        *live.Hub
	logger     *log.Logger
}

// New builds the full server: service container, live hub, middleware
// chain and every route group.
func New(cfg *config.Config, db *database.Connections, logger *log.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := live.NewHub(logger)
	container := services.NewContainer(db, cfg, hub, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if cfg.Features.MaintenanceMode {
		router.Use(middleware.MaintenanceMode())
	}
	router.Use(middleware.RateLimiter(container.Cache))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/health", api.HealthCheck(cfg, db))

	v1 := router.Group("/api/v1")
	api.RegisterAuthRoutes(v1, container)
	api.RegisterIngestionRoutes(v1, container)
	api.RegisterCompetitorRoutes(v1, container)
	api.RegisterAdminRoutes(v1, container)

	// Readout stations POST to the bare path as well.
	router.POST("/card", api.HandleCardReadout(container.Card))
	router.GET("/results", api.HandleKioskResults(container.Event, container.Results))

	if cfg.Features.EnableLivePush {
		router.GET("/ws", live.HandleConnection(hub))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		services: container,
		hub:      hub,
		logger:   logger,
	}
}

// Start runs the live hub and begins serving HTTP.
func (s *Server) Start() error {
	go s.hub.Run()
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
