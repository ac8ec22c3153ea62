// internal/store/run_store.go
// Run and RunSplit data access.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"o-event/internal/models"
)

// RunStore handles Run and RunSplit data access.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new run store.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Create inserts a new run.
func (s *RunStore) Create(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO runs (id, competitor_id, day, start_slot, start, finish, result, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.CompetitorID, run.Day, run.StartSlot, run.Start, run.Finish, run.Result, run.Status,
	)
	return err
}

// GetByCompetitorAndDay resolves the Run for a (day, competitor) pair;
// missing is fatal for readout processing.
func (s *RunStore) GetByCompetitorAndDay(ctx context.Context, competitorID string, day int) (*models.Run, error) {
	query := `
		SELECT id, competitor_id, day, start_slot, start, finish, result, status
		FROM runs WHERE competitor_id = ? AND day = ?
	`
	var run models.Run
	err := s.db.QueryRowContext(ctx, query, competitorID, day).Scan(
		&run.ID, &run.CompetitorID, &run.Day, &run.StartSlot, &run.Start, &run.Finish, &run.Result, &run.Status,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no run configured for competitor %s on day %d", competitorID, day)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListByGroupAndDay returns every run for competitors in a group on a day,
// used by ranking and live standings.
func (s *RunStore) ListByGroupAndDay(ctx context.Context, group string, day int) ([]models.Run, error) {
	query := `
		SELECT r.id, r.competitor_id, r.day, r.start_slot, r.start, r.finish, r.result, r.status
		FROM runs r
		JOIN competitors c ON c.id = r.competitor_id
		WHERE c.` + "`group`" + ` = ? AND r.day = ?
	`
	rows, err := s.db.QueryContext(ctx, query, group, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.CompetitorID, &run.Day, &run.StartSlot, &run.Start, &run.Finish, &run.Result, &run.Status); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// ListByDay returns every run on a day, across all groups.
func (s *RunStore) ListByDay(ctx context.Context, day int) ([]models.Run, error) {
	query := `
		SELECT id, competitor_id, day, start_slot, start, finish, result, status
		FROM runs WHERE day = ?
	`
	rows, err := s.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.CompetitorID, &run.Day, &run.StartSlot, &run.Start, &run.Finish, &run.Result, &run.Status); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// ListByCompetitor returns every run across all days for one competitor,
// used by multi-day ranking.
func (s *RunStore) ListByCompetitor(ctx context.Context, competitorID string) ([]models.Run, error) {
	query := `
		SELECT id, competitor_id, day, start_slot, start, finish, result, status
		FROM runs WHERE competitor_id = ? ORDER BY day
	`
	rows, err := s.db.QueryContext(ctx, query, competitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.CompetitorID, &run.Day, &run.StartSlot, &run.Start, &run.Finish, &run.Result, &run.Status); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// SetOutcome updates a run's start/finish/result/status fields after card
// processing.
func (s *RunStore) SetOutcome(ctx context.Context, runID string, start, finish, result int, status models.RunStatus) error {
	query := `UPDATE runs SET start = ?, finish = ?, result = ?, status = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, start, finish, result, status, runID)
	return err
}

// SetStartSlot stores the scheduler's output for one run.
func (s *RunStore) SetStartSlot(ctx context.Context, runID string, slot int) error {
	query := `UPDATE runs SET start_slot = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, slot, runID)
	return err
}

// ReplaceSplits deletes any existing RunSplits for a run and inserts the
// given set, all within one transaction, so reprocessing a card always
// leaves exactly the regenerated rows.
func (s *RunStore) ReplaceSplits(ctx context.Context, runID string, splits []models.RunSplit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_splits WHERE run_id = ?`, runID); err != nil {
		return err
	}

	for _, sp := range splits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_splits (id, run_id, seq, control_code, leg_time, cum_time)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sp.ID, runID, sp.Seq, sp.ControlCode, sp.LegTime, sp.CumTime,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SplitsByRun returns the splits of one run, ordered by seq.
func (s *RunStore) SplitsByRun(ctx context.Context, runID string) ([]models.RunSplit, error) {
	query := `
		SELECT id, run_id, seq, control_code, leg_time, cum_time
		FROM run_splits WHERE run_id = ? ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RunSplit
	for rows.Next() {
		var sp models.RunSplit
		if err := rows.Scan(&sp.ID, &sp.RunID, &sp.Seq, &sp.ControlCode, &sp.LegTime, &sp.CumTime); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// SplitsForGroupAndDay returns, for every run sharing a group and day,
// all of that run's splits ordered by seq — the input to the receipt
// engine's field-best-leg computation.
func (s *RunStore) SplitsForGroupAndDay(ctx context.Context, group string, day int) ([][]models.RunSplit, error) {
	runs, err := s.ListByGroupAndDay(ctx, group, day)
	if err != nil {
		return nil, err
	}
	out := make([][]models.RunSplit, 0, len(runs))
	for _, r := range runs {
		splits, err := s.SplitsByRun(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, splits)
	}
	return out, nil
}
