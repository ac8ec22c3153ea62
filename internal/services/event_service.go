// internal/services/event_service.go
// Event configuration, stage setup and IOF document exchange.

package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"o-event/internal/iof"
	"o-event/internal/models"
	"o-event/internal/orienteer/ranking"
	"o-event/internal/store"
	"o-event/internal/utils"
)

// EventService owns the event-wide configuration table, the stage/course
// setup and the IOF 3.0 document exchange.
type EventService struct {
	stores *store.Container
	cache  *CacheService
	logger *log.Logger
}

// NewEventService creates a new event service
func NewEventService(stores *store.Container, cache *CacheService, logger *log.Logger) *EventService {
	return &EventService{
		stores: stores,
		cache:  cache,
		logger: logger,
	}
}

// GetConfig returns every configuration row.
func (s *EventService) GetConfig(ctx context.Context) ([]models.Config, error) {
	return s.stores.Config.All(ctx)
}

// SetConfig upserts one configuration row, validating its declared type.
func (s *EventService) SetConfig(ctx context.Context, cfg models.Config) error {
	if cfg.Key == models.ConfigKeyName {
		if err := utils.ValidateEventName(cfg.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	switch cfg.Type {
	case models.ConfigTypeString:
	case models.ConfigTypeInt:
		if _, err := strconv.Atoi(cfg.Value); err != nil {
			return fmt.Errorf("%w: key %s declared int but value is %q", ErrInvalidInput, cfg.Key, cfg.Value)
		}
	case models.ConfigTypeDate:
		if _, err := time.Parse("2006-01-02", cfg.Value); err != nil {
			return fmt.Errorf("%w: key %s declared date but value is %q", ErrInvalidInput, cfg.Key, cfg.Value)
		}
	default:
		return fmt.Errorf("%w: unknown config type %q", ErrInvalidInput, cfg.Type)
	}
	return s.stores.Config.Set(ctx, cfg)
}

// CurrentDay reads the global current day.
func (s *EventService) CurrentDay(ctx context.Context) (int, error) {
	return s.stores.Config.CurrentDay(ctx)
}

// SetCurrentDay switches the global current day. The day must have a stage.
func (s *EventService) SetCurrentDay(ctx context.Context, day int) error {
	if _, err := s.stores.Stage.GetByDay(ctx, day); err != nil {
		return fmt.Errorf("%w: day %d", ErrNoStage, day)
	}
	return s.stores.Config.Set(ctx, models.Config{
		Key:   models.ConfigKeyCurrentDay,
		Value: strconv.Itoa(day),
		Type:  models.ConfigTypeInt,
	})
}

// ListStages returns every stage ordered by day.
func (s *EventService) ListStages(ctx context.Context) ([]models.Stage, error) {
	stages, err := s.stores.Stage.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Day < stages[j].Day })
	return stages, nil
}

// ImportCourseData parses an IOF 3.0 CourseData document and persists its
// controls and courses against the given day's stage, creating the stage
// when absent.
func (s *EventService) ImportCourseData(ctx context.Context, day int, data []byte) (*iof.StageImport, error) {
	parsed, err := iof.ParseCourseData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stage, err := s.stores.Stage.GetByDay(ctx, day)
	if err != nil {
		stage = &models.Stage{ID: utils.GenerateUUID(), Day: day}
		if err := s.stores.Stage.Create(ctx, stage); err != nil {
			return nil, fmt.Errorf("failed to create stage for day %d: %w", day, err)
		}
	}

	for i := range parsed.Controls {
		parsed.Controls[i].ID = utils.GenerateUUID()
		parsed.Controls[i].StageID = stage.ID
		if err := s.stores.Control.Create(ctx, &parsed.Controls[i]); err != nil {
			return nil, err
		}
	}

	for i := range parsed.Courses {
		course := &parsed.Courses[i]
		course.ID = utils.GenerateUUID()
		course.StageID = stage.ID
		for j := range course.Controls {
			course.Controls[j].ID = utils.GenerateUUID()
			course.Controls[j].CourseID = course.ID
		}
		if err := s.stores.Course.Create(ctx, course); err != nil {
			return nil, err
		}
	}

	s.logger.Printf("imported %d controls, %d courses for day %d", len(parsed.Controls), len(parsed.Courses), day)
	return parsed, nil
}

// ExportResultList builds the IOF 3.0 ResultList document for one day.
func (s *EventService) ExportResultList(ctx context.Context, day int) ([]byte, error) {
	stage, err := s.stores.Stage.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d", ErrNoStage, day)
	}

	courses, err := s.stores.Course.ListByStage(ctx, stage.ID)
	if err != nil {
		return nil, err
	}

	clubs, err := s.stores.Club.List(ctx)
	if err != nil {
		return nil, err
	}
	clubsByReg := make(map[string]models.Club, len(clubs))
	for _, c := range clubs {
		clubsByReg[c.Reg] = c
	}

	var classes []iof.ClassExport
	for _, course := range courses {
		runs, err := s.stores.Run.ListByGroupAndDay(ctx, course.Name, day)
		if err != nil {
			return nil, err
		}

		competitors := make(map[string]models.Competitor)
		splits := make(map[string][]models.RunSplit)
		for _, r := range runs {
			c, err := s.stores.Competitor.GetByID(ctx, r.CompetitorID)
			if err != nil {
				return nil, err
			}
			competitors[r.CompetitorID] = *c

			sp, err := s.stores.Run.SplitsByRun(ctx, r.ID)
			if err != nil {
				return nil, err
			}
			splits[r.ID] = sp
		}

		classes = append(classes, iof.ClassExport{
			Group:       course.Name,
			Course:      course,
			Placements:  rankForExport(runs),
			Competitors: competitors,
			Clubs:       clubsByReg,
			Splits:      splits,
		})
	}

	eventName := s.stores.Config.GetString(ctx, models.ConfigKeyName, "o-event")
	return iof.BuildResultList(eventName, time.Now(), classes)
}

func rankForExport(runs []models.Run) []ranking.Placement {
	return ranking.RankSingleDay(runs)
}
