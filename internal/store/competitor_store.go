// internal/store/competitor_store.go
// Competitor and Club data access.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"o-event/internal/models"
)

// CompetitorStore handles Competitor data access.
type CompetitorStore struct {
	db *sql.DB
}

// NewCompetitorStore creates a new competitor store.
func NewCompetitorStore(db *sql.DB) *CompetitorStore {
	return &CompetitorStore{db: db}
}

const competitorColumns = `
	id, reg, ` + "`group`" + `, sid, first_name, last_name, notes,
	declared_days, declared_fee, paid_fee
`

func scanCompetitor(row interface{ Scan(...interface{}) error }) (*models.Competitor, error) {
	var c models.Competitor
	err := row.Scan(
		&c.ID, &c.Reg, &c.Group, &c.SID, &c.FirstName, &c.LastName, &c.Notes,
		&c.DeclaredDays, &c.DeclaredFee, &c.PaidFee,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new competitor.
func (s *CompetitorStore) Create(ctx context.Context, c *models.Competitor) error {
	query := `
		INSERT INTO competitors (` + competitorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Reg, c.Group, c.SID, c.FirstName, c.LastName, c.Notes,
		c.DeclaredDays, c.DeclaredFee, c.PaidFee,
	)
	return err
}

// GetBySID looks up a competitor by card number.
func (s *CompetitorStore) GetBySID(ctx context.Context, sid int) (*models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE sid = ?`
	c, err := scanCompetitor(s.db.QueryRowContext(ctx, query, sid))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no competitor with sid %d", sid)
	}
	return c, err
}

// GetByID looks up a competitor by primary key.
func (s *CompetitorStore) GetByID(ctx context.Context, id string) (*models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE id = ?`
	c, err := scanCompetitor(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("competitor %s not found", id)
	}
	return c, err
}

// ListByGroup returns every competitor registered in a group.
func (s *CompetitorStore) ListByGroup(ctx context.Context, group string) ([]models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors WHERE ` + "`group`" + ` = ?`
	rows, err := s.db.QueryContext(ctx, query, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Competitor
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// List returns every registered competitor.
func (s *CompetitorStore) List(ctx context.Context) ([]models.Competitor, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitors`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Competitor
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites a competitor's editable fields.
func (s *CompetitorStore) Update(ctx context.Context, c *models.Competitor) error {
	query := `
		UPDATE competitors SET
			reg = ?, ` + "`group`" + ` = ?, sid = ?, first_name = ?, last_name = ?,
			notes = ?, declared_days = ?, declared_fee = ?, paid_fee = ?
		WHERE id = ?
	`
	_, err := s.db.ExecContext(ctx, query,
		c.Reg, c.Group, c.SID, c.FirstName, c.LastName,
		c.Notes, c.DeclaredDays, c.DeclaredFee, c.PaidFee, c.ID,
	)
	return err
}

// ClubStore handles Club lookup data access.
type ClubStore struct {
	db *sql.DB
}

// NewClubStore creates a new club store.
func NewClubStore(db *sql.DB) *ClubStore {
	return &ClubStore{db: db}
}

// Upsert inserts or updates a club's full name.
func (s *ClubStore) Upsert(ctx context.Context, club models.Club) error {
	query := `
		INSERT INTO clubs (reg, name) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name)
	`
	_, err := s.db.ExecContext(ctx, query, club.Reg, club.Name)
	return err
}

// GetByReg retrieves a club by its registration code.
func (s *ClubStore) GetByReg(ctx context.Context, reg string) (*models.Club, error) {
	query := `SELECT reg, name FROM clubs WHERE reg = ?`
	var c models.Club
	err := s.db.QueryRowContext(ctx, query, reg).Scan(&c.Reg, &c.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("club %q not found", reg)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every club.
func (s *ClubStore) List(ctx context.Context) ([]models.Club, error) {
	query := `SELECT reg, name FROM clubs`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Club
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(&c.Reg, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
