// internal/services/schedule_service.go
// Start-slot assignment for a day's runs, with seed logging.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"o-event/internal/config"
	"o-event/internal/models"
	"o-event/internal/scheduler"
	"o-event/internal/store"
)

// ScheduleService wires the slot scheduler to the store: it builds the
// runnable list for a day, runs the placement, persists the slots and
// appends the seed to the per-day history so the assignment can be
// reproduced.
type ScheduleService struct {
	stores    *store.Container
	cfg       config.SchedulerConfig
	analytics *AnalyticsService
	logger    *log.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(stores *store.Container, cfg config.SchedulerConfig, analytics *AnalyticsService, logger *log.Logger) *ScheduleService {
	return &ScheduleService{
		stores:    stores,
		cfg:       cfg,
		analytics: analytics,
		logger:    logger,
	}
}

// AssignDay assigns a start slot to every run of the given day and returns
// the assignments. The same seed always reproduces the same slots.
func (s *ScheduleService) AssignDay(ctx context.Context, day int, parallelStarts int, seed int64) ([]scheduler.Assignment, error) {
	if parallelStarts < 1 {
		parallelStarts = s.cfg.DefaultParallelStart
	}

	stage, err := s.stores.Stage.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStage, err)
	}

	runs, err := s.stores.Run.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	courses, err := s.stores.Course.ListByStage(ctx, stage.ID)
	if err != nil {
		return nil, err
	}
	courseByName := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		courseByName[c.Name] = c
	}

	pace := map[string]float64{}
	runnables := make([]scheduler.Runnable, 0, len(runs))
	for _, r := range runs {
		competitor, err := s.stores.Competitor.GetByID(ctx, r.CompetitorID)
		if err != nil {
			return nil, err
		}
		course, ok := courseByName[competitor.Group]
		if !ok {
			return nil, fmt.Errorf("%w: group %s has no course on day %d", ErrIntegrity, competitor.Group, day)
		}
		runnables = append(runnables, scheduler.Runnable{
			RunID:              r.ID,
			Group:              competitor.Group,
			Reg:                competitor.Reg,
			FirstControlCode:   firstControlCode(course),
			CourseLengthMetres: course.Length,
			PriorityBoost:      competitor.Reg == s.cfg.OCORegTag,
		})
	}

	assignments := scheduler.Assign(runnables, parallelStarts, pace, seed)

	for _, a := range assignments {
		if err := s.stores.Run.SetStartSlot(ctx, a.RunID, a.Slot); err != nil {
			return nil, err
		}
	}

	if err := s.appendSeed(ctx, day, seed); err != nil {
		return nil, err
	}

	s.analytics.LogEvent(ctx, EventSchedulerRun, map[string]interface{}{
		"day":             day,
		"seed":            seed,
		"runs":            len(assignments),
		"parallel_starts": parallelStarts,
	})

	return assignments, nil
}

// firstControlCode is the control at seq 1 of the course: seq 0 is the
// start bookend.
func firstControlCode(course models.Course) string {
	for _, cc := range course.Controls {
		if cc.Seq == 1 {
			return cc.ControlCode
		}
	}
	return ""
}

// appendSeed records the seed in the per-day history list under the
// start_seeds config key.
func (s *ScheduleService) appendSeed(ctx context.Context, day int, seed int64) error {
	seeds := make(map[int][]int64)
	if cfg, err := s.stores.Config.Get(ctx, models.ConfigKeyStartSeeds); err == nil {
		if decoded, err := cfg.StartSeeds(); err == nil {
			seeds = decoded
		}
	}
	seeds[day] = append(seeds[day], seed)

	encoded, err := json.Marshal(seeds)
	if err != nil {
		return err
	}
	return s.stores.Config.Set(ctx, models.Config{
		Key:   models.ConfigKeyStartSeeds,
		Value: string(encoded),
		Type:  models.ConfigTypeString,
	})
}
