// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"

	"o-event/internal/config"
	"o-event/internal/database"
	"o-event/internal/live"
	"o-event/internal/printer"
	"o-event/internal/store"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth         *AuthService
	Card         *CardService
	Results      *ResultsService
	Schedule     *ScheduleService
	Registration *RegistrationService
	Event        *EventService
	Cache        *CacheService
	Analytics    *AnalyticsService
	Stores       *store.Container
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, hub *live.Hub, logger *log.Logger) *Container {
	// Initialize stores
	stores := store.NewContainer(db)

	// Initialize cache service
	cache := NewCacheService(db.Redis, logger)

	// Initialize analytics event log
	analytics := NewAnalyticsService(db.MongoDB, cache, logger)

	// Printer mux: hardware when available, in-memory capture otherwise
	printMux := printer.NewMux(cfg.Printer, cfg.Features.EnablePrinter, logger)

	// Initialize services with their dependencies
	auth := NewAuthService(stores.Staff, cfg.Auth, cache, logger)
	event := NewEventService(stores, cache, logger)
	registration := NewRegistrationService(stores, logger)
	results := NewResultsService(stores, cache, logger)
	card := NewCardService(stores, cfg, results, printMux, hub, analytics, cache, logger)
	schedule := NewScheduleService(stores, cfg.Scheduler, analytics, logger)

	return &Container{
		Auth:         auth,
		Card:         card,
		Results:      results,
		Schedule:     schedule,
		Registration: registration,
		Event:        event,
		Cache:        cache,
		Analytics:    analytics,
		Stores:       stores,
	}
}

// Common errors used across services
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrIntegrity          = errors.New("integrity violation")
	ErrNoStage            = errors.New("no stage configured for this day")
	ErrDuplicateDay       = errors.New("competitor already has a run on this day")
)
