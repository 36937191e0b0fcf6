package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

type SettingStore struct {
	db *sql.DB
}

func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// GetAll loads the full settings table into an engine snapshot map.
func (s *SettingStore) GetAll(ctx context.Context) (engine.GlobalSettings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM global_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	settings := engine.GlobalSettings{}
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// Upsert writes one setting, overwriting any existing value.
func (s *SettingStore) Upsert(ctx context.Context, key string, value float64) error {
	query := `
		INSERT INTO global_settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = EXCLUDED.setting_value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}

// InsertIfAbsent seeds a default without clobbering a tuned value.
func (s *SettingStore) InsertIfAbsent(ctx context.Context, key string, value float64) error {
	query := `
		INSERT INTO global_settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to seed setting %s: %w", key, err)
	}
	return nil
}
