// internal/services/card_service.go
// Card readout processing: persist, resolve, validate, split, print.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"o-event/internal/config"
	"o-event/internal/live"
	"o-event/internal/models"
	"o-event/internal/orienteer/cardproc"
	"o-event/internal/orienteer/receipt"
	"o-event/internal/printer"
	"o-event/internal/store"
	"o-event/internal/utils"
)

// ProcessResult is the ingestion boundary's response for one readout.
type ProcessResult struct {
	Status models.CardStatus `json:"status"`
	SID    int               `json:"sid"`
}

// CardService drives a punch-card readout from raw JSON to a committed run
// with splits, a printed receipt, and a live standings push.
type CardService struct {
	stores    *store.Container
	cfg       *config.Config
	results   *ResultsService
	printMux  *printer.Mux
	hub       *live.Hub
	analytics *AnalyticsService
	cache     *CacheService
	logger    *log.Logger
}

// NewCardService creates a new card service
func NewCardService(
	stores *store.Container,
	cfg *config.Config,
	results *ResultsService,
	printMux *printer.Mux,
	hub *live.Hub,
	analytics *AnalyticsService,
	cache *CacheService,
	logger *log.Logger,
) *CardService {
	return &CardService{
		stores:    stores,
		cfg:       cfg,
		results:   results,
		printMux:  printMux,
		hub:       hub,
		analytics: analytics,
		cache:     cache,
		logger:    logger,
	}
}

// Process runs the full readout protocol. Statuses short of OK/MP are
// ordinary results, not errors; a missing run row for a known competitor
// is an integrity failure and surfaces as an error.
func (s *CardService) Process(ctx context.Context, readout models.RawReadout) (*ProcessResult, error) {
	// Persist the card first so every readout leaves a trace, whatever
	// its eventual status.
	card := &models.Card{
		ID:          utils.GenerateUUID(),
		CardNumber:  readout.CardNumber,
		ReadoutTime: time.Now(),
		StartTime:   readout.StartTime,
		FinishTime:  readout.FinishTime,
		CheckTime:   readout.CheckTime,
		Raw:         models.RawJSON(readout),
		Status:      models.CardStatusUnknown,
	}
	if err := s.stores.Card.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to persist card: %w", err)
	}

	return s.process(ctx, card, readout)
}

// Reprocess re-runs the protocol against an already-persisted card, used
// for manual fixes. Splits are fully regenerated, so repeating it is
// harmless.
func (s *CardService) Reprocess(ctx context.Context, cardID string) (*ProcessResult, error) {
	card, err := s.stores.Card.GetByID(ctx, cardID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.process(ctx, card, models.RawReadout(card.Raw))
}

func (s *CardService) process(ctx context.Context, card *models.Card, readout models.RawReadout) (*ProcessResult, error) {
	day, err := s.stores.Config.CurrentDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: current_day unset: %v", ErrIntegrity, err)
	}

	competitor, err := s.stores.Competitor.GetBySID(ctx, readout.CardNumber)
	if err != nil {
		s.finishCard(ctx, card, nil, models.CardStatusUnknown, day)
		return &ProcessResult{Status: models.CardStatusUnknown, SID: readout.CardNumber}, nil
	}

	run, err := s.stores.Run.GetByCompetitorAndDay(ctx, competitor.ID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	// Duplicate detection: a prior card already committed for this run
	// with a differing payload wins; the new card stays unassigned.
	prior, err := s.stores.Card.ExistingForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range prior {
		if p.ID != card.ID && !models.RawReadout(p.Raw).Equal(readout) {
			s.finishCard(ctx, card, nil, models.CardStatusDuplicate, day)
			return &ProcessResult{Status: models.CardStatusDuplicate, SID: readout.CardNumber}, nil
		}
	}

	if !card.HasStart() {
		s.finishCard(ctx, card, &run.ID, models.CardStatusNoStart, day)
		return &ProcessResult{Status: models.CardStatusNoStart, SID: readout.CardNumber}, nil
	}
	if !card.HasFinish() {
		s.finishCard(ctx, card, &run.ID, models.CardStatusNoFinish, day)
		return &ProcessResult{Status: models.CardStatusNoFinish, SID: readout.CardNumber}, nil
	}

	stage, err := s.stores.Stage.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	course, err := s.stores.Course.GetByStageAndName(ctx, stage.ID, competitor.Group)
	if err != nil {
		s.finishCard(ctx, card, &run.ID, models.CardStatusUnknownCourse, day)
		return &ProcessResult{Status: models.CardStatusUnknownCourse, SID: readout.CardNumber}, nil
	}

	ignore, err := s.stores.Config.IgnoreControls(ctx)
	if err != nil {
		return nil, err
	}

	punches := make([]cardproc.RawPunch, len(readout.Punches))
	for i, p := range readout.Punches {
		punches[i] = cardproc.RawPunch{Code: p.Code, Time: p.Time}
	}

	out := cardproc.Process(cardproc.Input{
		Punches:    punches,
		StartTime:  readout.StartTime,
		FinishTime: readout.FinishTime,
		Course:     *course,
		Ignore:     ignore,
		MaxLeg:     s.cfg.Scheduler.MaxLegSeconds,
	})

	if err := s.stores.Run.SetOutcome(ctx, run.ID, readout.StartTime, readout.FinishTime, out.Result, out.Status); err != nil {
		return nil, err
	}

	for i := range out.Splits {
		out.Splits[i].ID = utils.GenerateUUID()
		out.Splits[i].RunID = run.ID
	}
	if err := s.stores.Run.ReplaceSplits(ctx, run.ID, out.Splits); err != nil {
		return nil, err
	}

	cardStatus := models.CardStatusMP
	if out.Status == models.RunOK {
		cardStatus = models.CardStatusOK
	}
	s.finishCard(ctx, card, &run.ID, cardStatus, day)

	s.results.InvalidateDay(day)
	s.hub.BroadcastGroupUpdate(competitor.Group, day, live.MessageRunCommitted, map[string]interface{}{
		"sid":    readout.CardNumber,
		"name":   competitor.FullName(),
		"status": string(cardStatus),
	})
	s.printReceipt(ctx, card, competitor, course, run.ID, out, day)

	return &ProcessResult{Status: cardStatus, SID: readout.CardNumber}, nil
}

// finishCard stamps the resolved status (and run link, when any) onto the
// persisted card and records the readout in the event log.
func (s *CardService) finishCard(ctx context.Context, card *models.Card, runID *string, status models.CardStatus, day int) {
	if err := s.stores.Card.LinkToRun(ctx, card.ID, runID, status); err != nil {
		s.logger.Printf("failed to update card %s: %v", card.ID, err)
	}
	s.analytics.LogEvent(ctx, EventCardReadout, map[string]interface{}{
		"card_number": card.CardNumber,
		"status":      string(status),
		"day":         day,
	})
}

// printReceipt assembles and prints the receipt for a committed run.
// Printer trouble is logged, never propagated.
func (s *CardService) printReceipt(ctx context.Context, card *models.Card, competitor *models.Competitor, course *models.Course, runID string, out cardproc.Output, day int) {
	allSplits, err := s.stores.Run.SplitsForGroupAndDay(ctx, competitor.Group, day)
	if err != nil {
		s.logger.Printf("receipt: failed to load field splits: %v", err)
		return
	}
	fieldBest := receipt.FieldBestLegs(allSplits)
	legs := receipt.BuildLegStats(out.Splits, *course, fieldBest)

	cumulativeLoss := 0
	for _, leg := range legs {
		if leg.Loss != nil {
			cumulativeLoss += *leg.Loss
		}
	}

	standing := s.standingFor(ctx, competitor, out, day, runID)

	clubName := competitor.Reg
	if club, err := s.stores.Club.GetByReg(ctx, competitor.Reg); err == nil {
		clubName = club.Name
	}

	start := card.StartTime
	finish := card.FinishTime
	in := receipt.Input{
		Width:          s.cfg.Printer.WidthCols,
		EventName:      s.stores.Config.GetString(ctx, models.ConfigKeyName, ""),
		EventDate:      s.stores.Config.GetString(ctx, models.ConfigKeyDate, ""),
		Place:          s.stores.Config.GetString(ctx, models.ConfigKeyPlace, ""),
		Name:           competitor.FullName(),
		Club:           clubName,
		Category:       competitor.Group,
		DistanceKM:     float64(course.Length) / 1000.0,
		ClimbMetres:    course.Climb,
		CheckTime:      card.CheckTime,
		StartTime:      &start,
		FinishTime:     &finish,
		CardNumber:     card.CardNumber,
		Legs:           legs,
		Status:         out.Status,
		Result:         &out.Result,
		CumulativeLoss: cumulativeLoss,
		Standing:       standing,
	}

	lines := receipt.Render(in)
	if err := s.printMux.PrintLines(in.EventName, lines); err != nil {
		s.logger.Printf("receipt print failed: %v", err)
	}
}

// standingFor computes the live place among the group's completed runs.
func (s *CardService) standingFor(ctx context.Context, competitor *models.Competitor, out cardproc.Output, day int, runID string) receipt.Standing {
	if out.Status != models.RunOK {
		return receipt.Standing{}
	}
	groupRuns, err := s.stores.Run.ListByGroupAndDay(ctx, competitor.Group, day)
	if err != nil {
		s.logger.Printf("receipt: failed to load group runs: %v", err)
		return receipt.Standing{}
	}
	var others []int
	for _, r := range groupRuns {
		if r.ID == runID || r.Status != models.RunOK || r.Result == nil {
			continue
		}
		others = append(others, *r.Result)
	}
	return receipt.ComputeStanding(out.Result, others)
}
