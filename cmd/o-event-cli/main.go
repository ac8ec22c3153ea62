// cmd/o-event-cli/main.go
// Interactive secretary console: competitor registration, edits, start-slot
// assignment and day summaries against the event store.

package main

import (
	"context"
	"log"
	"os"
	"time"

	"o-event/internal/cli"
	"o-event/internal/config"
	"o-event/internal/database"
	"o-event/internal/live"
	"o-event/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stderr, "[o-event-cli] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Initialize(ctx, database.Config{
		MySQL: database.MySQLConfig{
			DSN:             cfg.Database.MySQL.DSN,
			MaxOpenConns:    cfg.Database.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.MySQL.ConnMaxLifetime,
		},
		MongoDB: database.MongoConfig{
			URI:      cfg.Database.MongoDB.URI,
			Database: cfg.Database.MongoDB.Database,
		},
		Redis: database.RedisConfig{
			Addr:     cfg.Database.Redis.Addr,
			Password: cfg.Database.Redis.Password,
			DB:       cfg.Database.Redis.DB,
		},
	}, logger)
	cancel()
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.Close()

	// The console shares the service container with the server; its live
	// hub has no connected displays but keeps broadcasts harmless.
	hub := live.NewHub(logger)
	go hub.Run()
	container := services.NewContainer(db, cfg, hub, logger)

	console := cli.New(container, os.Stdin, os.Stdout, logger)
	if err := console.Run(context.Background()); err != nil {
		logger.Printf("console failed: %v", err)
		os.Exit(1)
	}
}
