// internal/services/registration_service.go
// Competitor and club registration, CSV import, field editing.

package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"o-event/internal/csvimport"
	"o-event/internal/models"
	"o-event/internal/store"
	"o-event/internal/utils"
)

// RegistrationService manages competitors, their per-day runs and the club
// lookup table.
type RegistrationService struct {
	stores *store.Container
	logger *log.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(stores *store.Container, logger *log.Logger) *RegistrationService {
	return &RegistrationService{
		stores: stores,
		logger: logger,
	}
}

// CreateCompetitor registers a competitor and creates one DNS run per
// declared day.
func (s *RegistrationService) CreateCompetitor(ctx context.Context, c *models.Competitor) error {
	if c.ID == "" {
		c.ID = utils.GenerateUUID()
	}
	if c.SID <= 0 {
		return fmt.Errorf("%w: sid must be positive", ErrInvalidInput)
	}
	if err := s.stores.Competitor.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create competitor: %w", err)
	}

	for _, day := range c.DeclaredDays {
		run := &models.Run{
			ID:           utils.GenerateUUID(),
			CompetitorID: c.ID,
			Day:          day,
			Status:       models.RunDNS,
		}
		if err := s.stores.Run.Create(ctx, run); err != nil {
			return fmt.Errorf("failed to create run for day %d: %w", day, err)
		}
	}
	return nil
}

// GetCompetitor looks up a competitor by primary key.
func (s *RegistrationService) GetCompetitor(ctx context.Context, id string) (*models.Competitor, error) {
	c, err := s.stores.Competitor.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// ListCompetitors returns every competitor, optionally filtered by a
// case-insensitive substring of name, registration code or group.
func (s *RegistrationService) ListCompetitors(ctx context.Context, query string) ([]models.Competitor, error) {
	all, err := s.stores.Competitor.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	q := strings.ToLower(query)
	var out []models.Competitor
	for _, c := range all {
		haystack := strings.ToLower(fmt.Sprintf("%s %s %s %s %d", c.FirstName, c.LastName, c.Reg, c.Group, c.SID))
		if strings.Contains(haystack, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// competitorFields is the declared editable field list. The primary key is
// deliberately absent: an edit record naming it is rejected, unknown field
// names are ignored.
var competitorFields = map[string]func(*models.Competitor, string) error{
	"reg":   func(c *models.Competitor, v string) error { c.Reg = v; return nil },
	"group": func(c *models.Competitor, v string) error { c.Group = v; return nil },
	"sid": func(c *models.Competitor, v string) error {
		sid, err := strconv.Atoi(v)
		if err != nil || sid <= 0 {
			return fmt.Errorf("malformed sid %q", v)
		}
		c.SID = sid
		return nil
	},
	"first_name": func(c *models.Competitor, v string) error { c.FirstName = v; return nil },
	"last_name":  func(c *models.Competitor, v string) error { c.LastName = v; return nil },
	"notes":      func(c *models.Competitor, v string) error { c.Notes = v; return nil },
	"declared_fee": func(c *models.Competitor, v string) error {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("malformed declared_fee %q", v)
		}
		c.DeclaredFee = fee
		return nil
	},
	"paid_fee": func(c *models.Competitor, v string) error {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("malformed paid_fee %q", v)
		}
		c.PaidFee = fee
		return nil
	},
}

// EditCompetitor applies a field/value record to a competitor and persists
// the result. Unknown fields are ignored; overwriting the primary key is
// rejected.
func (s *RegistrationService) EditCompetitor(ctx context.Context, id string, fields map[string]string) (*models.Competitor, error) {
	c, err := s.stores.Competitor.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	for name, value := range fields {
		if name == "id" {
			return nil, fmt.Errorf("%w: cannot overwrite primary key", ErrInvalidInput)
		}
		setter, known := competitorFields[name]
		if !known {
			continue
		}
		if err := setter(c, value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.stores.Competitor.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RecordPayment marks fees paid during on-site registration.
func (s *RegistrationService) RecordPayment(ctx context.Context, id string, amount float64) (*models.Competitor, error) {
	c, err := s.stores.Competitor.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	c.PaidFee += amount
	if err := s.stores.Competitor.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ImportCompetitorsCSV reads a competitor list and registers every row,
// returning the number imported.
func (s *RegistrationService) ImportCompetitorsCSV(ctx context.Context, r io.Reader) (int, error) {
	competitors, err := csvimport.ReadCompetitors(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i := range competitors {
		if err := s.CreateCompetitor(ctx, &competitors[i]); err != nil {
			return i, err
		}
	}
	return len(competitors), nil
}

// ImportClubsCSV reads a club lookup list and upserts every row.
func (s *RegistrationService) ImportClubsCSV(ctx context.Context, r io.Reader) (int, error) {
	clubs, err := csvimport.ReadClubs(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, club := range clubs {
		if err := s.stores.Club.Upsert(ctx, club); err != nil {
			return 0, err
		}
	}
	return len(clubs), nil
}

// ListClubs returns the club lookup table.
func (s *RegistrationService) ListClubs(ctx context.Context) ([]models.Club, error) {
	return s.stores.Club.List(ctx)
}
