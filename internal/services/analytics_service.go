// internal/services/analytics_service.go
// Append-only event log of readouts and scheduler runs (MongoDB).

package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsService records card readouts and scheduler runs into an
// append-only MongoDB collection and serves the admin summary endpoint.
type AnalyticsService struct {
	db     *mongo.Database
	cache  *CacheService
	logger *log.Logger
}

// Event types recorded in the log.
const (
	EventCardReadout    = "card_readout"
	EventSchedulerRun   = "scheduler_run"
	EventImportFinished = "import_finished"
)

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *mongo.Database, cache *CacheService, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// LogEvent logs an analytics event
func (s *AnalyticsService) LogEvent(ctx context.Context, eventType string, data map[string]interface{}) error {
	event := bson.M{
		"type":       eventType,
		"data":       data,
		"timestamp":  time.Now(),
		"created_at": time.Now(),
	}

	_, err := s.db.Collection("event_log").InsertOne(ctx, event)
	if err != nil {
		s.logger.Printf("Failed to log analytics event: %v", err)
		// Don't return error - the event log must never break a readout
	}

	return nil
}

// ReadoutStats returns counters over today's logged readouts, grouped by
// resulting status.
func (s *AnalyticsService) ReadoutStats(ctx context.Context, day int) (map[string]interface{}, error) {
	cursor, err := s.db.Collection("event_log").Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"type": EventCardReadout, "data.day": day}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$data.status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := map[string]interface{}{}
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		stats[row.ID] = row.Count
	}
	return stats, cursor.Err()
}

// PlatformStats retrieves event-wide statistics for the admin dashboard.
func (s *AnalyticsService) PlatformStats(ctx context.Context) (map[string]interface{}, error) {
	// Try cache first
	var stats map[string]interface{}
	if err := s.cache.Get("platform_stats", &stats); err == nil {
		return stats, nil
	}

	total, err := s.db.Collection("event_log").CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	readouts, err := s.db.Collection("event_log").CountDocuments(ctx, bson.M{"type": EventCardReadout})
	if err != nil {
		return nil, err
	}

	stats = map[string]interface{}{
		"total_events":   total,
		"total_readouts": readouts,
	}

	// Cache for 5 minutes
	s.cache.Set("platform_stats", stats, 5*time.Minute)

	return stats, nil
}
