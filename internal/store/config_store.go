// internal/store/config_store.go
// Event-wide configuration key/value access.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"o-event/internal/models"
)

// ConfigStore handles reads/writes of the config table.
type ConfigStore struct {
	db *sql.DB
}

// NewConfigStore creates a new config store.
func NewConfigStore(db *sql.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// Get retrieves a single configuration row by key.
func (s *ConfigStore) Get(ctx context.Context, key string) (*models.Config, error) {
	query := `SELECT ` + "`key`" + `, value, type FROM config WHERE ` + "`key`" + ` = ?`

	var cfg models.Config
	err := s.db.QueryRowContext(ctx, query, key).Scan(&cfg.Key, &cfg.Value, &cfg.Type)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("config key %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetString returns a value, or def if the key is absent.
func (s *ConfigStore) GetString(ctx context.Context, key, def string) string {
	cfg, err := s.Get(ctx, key)
	if err != nil {
		return def
	}
	return cfg.Value
}

// Set upserts a configuration row.
func (s *ConfigStore) Set(ctx context.Context, cfg models.Config) error {
	query := `
		INSERT INTO config (` + "`key`" + `, value, type)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), type = VALUES(type)
	`
	_, err := s.db.ExecContext(ctx, query, cfg.Key, cfg.Value, cfg.Type)
	return err
}

// CurrentDay reads the ConfigKeyCurrentDay entry as an int.
func (s *ConfigStore) CurrentDay(ctx context.Context) (int, error) {
	cfg, err := s.Get(ctx, models.ConfigKeyCurrentDay)
	if err != nil {
		return 0, err
	}
	var day int
	if _, err := fmt.Sscanf(cfg.Value, "%d", &day); err != nil {
		return 0, fmt.Errorf("malformed current_day value %q: %w", cfg.Value, err)
	}
	return day, nil
}

// IgnoreControls reads and decodes the ConfigKeyIgnoreControls JSON list.
func (s *ConfigStore) IgnoreControls(ctx context.Context) (map[string]bool, error) {
	cfg, err := s.Get(ctx, models.ConfigKeyIgnoreControls)
	if err != nil {
		return map[string]bool{}, nil // absent key means no ignores configured
	}
	codes, err := cfg.IgnoreControls()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[fmt.Sprintf("%d", c)] = true
	}
	return set, nil
}

// All returns every configuration row, used by the CLI's summary and the
// receipt engine's header fields.
func (s *ConfigStore) All(ctx context.Context) ([]models.Config, error) {
	query := `SELECT ` + "`key`" + `, value, type FROM config`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Config
	for rows.Next() {
		var cfg models.Config
		if err := rows.Scan(&cfg.Key, &cfg.Value, &cfg.Type); err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}
