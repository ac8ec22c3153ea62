// internal/services/results_service.go
// Kiosk results, single-day and multi-day rankings.

package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"o-event/internal/models"
	"o-event/internal/orienteer/clock"
	"o-event/internal/orienteer/ranking"
	"o-event/internal/store"
)

// KioskRow is one line of the kiosk results listing.
type KioskRow struct {
	Position *int   `json:"position"`
	Name     string `json:"name"`
	Club     string `json:"club"`
	Result   string `json:"result"`
	Behind   string `json:"behind"`
	Status   string `json:"status"`
}

// MultiDayRow is one line of the multi-day standings.
type MultiDayRow struct {
	Place      *int   `json:"place"`
	Name       string `json:"name"`
	Club       string `json:"club"`
	Scores     []int  `json:"scores"`
	BestCount  int    `json:"best_count"`
	TotalScore int    `json:"total_score"`
	TotalTime  string `json:"total_time"`
}

// ResultsService serves ranked results for kiosks, exports and the CLI,
// caching rendered listings per day until the next card commit.
type ResultsService struct {
	stores *store.Container
	cache  *CacheService
	logger *log.Logger
}

// NewResultsService creates a new results service
func NewResultsService(stores *store.Container, cache *CacheService, logger *log.Logger) *ResultsService {
	return &ResultsService{
		stores: stores,
		cache:  cache,
		logger: logger,
	}
}

func kioskCacheKey(day int) string { return fmt.Sprintf("kiosk_results_day_%d", day) }

// InvalidateDay drops the cached kiosk listing after a card commit.
func (s *ResultsService) InvalidateDay(day int) {
	if err := s.cache.Delete(kioskCacheKey(day)); err != nil {
		s.logger.Printf("failed to invalidate results cache for day %d: %v", day, err)
	}
}

// KioskResults returns the current day's results keyed by group, covering
// every non-DNS run.
func (s *ResultsService) KioskResults(ctx context.Context, day int) (map[string][]KioskRow, error) {
	cached := make(map[string][]KioskRow)
	if err := s.cache.Get(kioskCacheKey(day), &cached); err == nil {
		return cached, nil
	}

	runs, err := s.stores.Run.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	competitors := make(map[string]*models.Competitor)
	byGroup := make(map[string][]models.Run)
	for _, r := range runs {
		if r.Status == models.RunDNS {
			continue
		}
		c, err := s.stores.Competitor.GetByID(ctx, r.CompetitorID)
		if err != nil {
			return nil, err
		}
		competitors[r.CompetitorID] = c
		byGroup[c.Group] = append(byGroup[c.Group], r)
	}

	out := make(map[string][]KioskRow, len(byGroup))
	for group, groupRuns := range byGroup {
		placements := ranking.RankSingleDay(groupRuns)
		rows := make([]KioskRow, 0, len(placements))
		for _, p := range placements {
			c := competitors[p.Run.CompetitorID]
			rows = append(rows, KioskRow{
				Position: p.Position,
				Name:     c.FullName(),
				Club:     c.Reg,
				Result:   clock.Format(p.Run.Result),
				Behind:   formatBehind(p.TimeBehind),
				Status:   string(p.Run.Status),
			})
		}
		out[group] = rows
	}

	if err := s.cache.Set(kioskCacheKey(day), out, 10*time.Minute); err != nil {
		s.logger.Printf("failed to cache kiosk results: %v", err)
	}

	return out, nil
}

func formatBehind(behind *int) string {
	if behind == nil {
		return ""
	}
	return "+" + clock.FormatSeconds(*behind)
}

// GroupPlacements ranks one group's runs on one day, for exports and the
// CLI summary.
func (s *ResultsService) GroupPlacements(ctx context.Context, group string, day int) ([]ranking.Placement, error) {
	runs, err := s.stores.Run.ListByGroupAndDay(ctx, group, day)
	if err != nil {
		return nil, err
	}
	return ranking.RankSingleDay(runs), nil
}

// MultiDayStandings aggregates every competitor's best runs across the
// first daysToCalculate days, grouped by category.
func (s *ResultsService) MultiDayStandings(ctx context.Context, daysToCalculate int) (map[string][]MultiDayRow, error) {
	competitors, err := s.stores.Competitor.List(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[string]map[string][]models.Run)
	names := make(map[string]*models.Competitor, len(competitors))
	for i := range competitors {
		c := &competitors[i]
		names[c.ID] = c
		runs, err := s.stores.Run.ListByCompetitor(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if byGroup[c.Group] == nil {
			byGroup[c.Group] = make(map[string][]models.Run)
		}
		byGroup[c.Group][c.ID] = runs
	}

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	out := make(map[string][]MultiDayRow, len(byGroup))
	for _, group := range groups {
		aggregates := ranking.RankMultiDay(daysToCalculate, byGroup[group])
		rows := make([]MultiDayRow, 0, len(aggregates))
		for _, a := range aggregates {
			c := names[a.CompetitorID]
			rows = append(rows, MultiDayRow{
				Place:      a.Place,
				Name:       c.FullName(),
				Club:       c.Reg,
				Scores:     a.Scores,
				BestCount:  a.BestCount,
				TotalScore: a.TotalScore,
				TotalTime:  clock.FormatSeconds(a.TotalTime),
			})
		}
		out[group] = rows
	}

	return out, nil
}
