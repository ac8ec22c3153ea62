// internal/store/card_store.go
// Card data access: punch-card readout events.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"o-event/internal/models"
)

// CardStore handles Card data access.
type CardStore struct {
	db *sql.DB
}

// NewCardStore creates a new card store.
func NewCardStore(db *sql.DB) *CardStore {
	return &CardStore{db: db}
}

// Create persists a new Card row under card.ID, which the caller must
// have already set.
func (s *CardStore) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, card_number, readout_time, start_time, finish_time, check_time, raw_json, status, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.CardNumber, card.ReadoutTime, card.StartTime, card.FinishTime,
		card.CheckTime, card.Raw, card.Status, card.RunID,
	)
	return err
}

// GetByID retrieves a card by primary key.
func (s *CardStore) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id, card_number, readout_time, start_time, finish_time, check_time, raw_json, status, run_id
		FROM cards WHERE id = ?
	`
	var c models.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CardNumber, &c.ReadoutTime, &c.StartTime, &c.FinishTime,
		&c.CheckTime, &c.Raw, &c.Status, &c.RunID,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistingForRun returns every prior card already linked to a run, used by
// duplicate detection.
func (s *CardStore) ExistingForRun(ctx context.Context, runID string) ([]models.Card, error) {
	query := `
		SELECT id, card_number, readout_time, start_time, finish_time, check_time, raw_json, status, run_id
		FROM cards WHERE run_id = ?
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.CardNumber, &c.ReadoutTime, &c.StartTime, &c.FinishTime, &c.CheckTime, &c.Raw, &c.Status, &c.RunID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LinkToRun stamps the run association and status onto a card after
// processing.
func (s *CardStore) LinkToRun(ctx context.Context, cardID string, runID *string, status models.CardStatus) error {
	query := `UPDATE cards SET run_id = ?, status = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, runID, status, cardID)
	return err
}
