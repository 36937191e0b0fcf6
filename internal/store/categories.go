package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

// MarketCategoryRow mirrors one market_category_config row.
type MarketCategoryRow struct {
	MarketID string `json:"market_id"`
	Channel  string `json:"channel"`
	Category string `json:"category"`
	engine.MarketCategoryConfig
}

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `market_id, channel, category,
	adoption_rate_override, marketing_lift_override, competitor_idx_override`

func scanCategory(row interface{ Scan(...any) error }) (MarketCategoryRow, error) {
	var r MarketCategoryRow
	var adoption, marketing, competitor sql.NullFloat64
	err := row.Scan(&r.MarketID, &r.Channel, &r.Category, &adoption, &marketing, &competitor)
	if err != nil {
		return r, err
	}
	if adoption.Valid {
		r.AdoptionRateOverride = &adoption.Float64
	}
	if marketing.Valid {
		r.MarketingLiftOverride = &marketing.Float64
	}
	if competitor.Valid {
		r.CompetitorIdxOverride = &competitor.Float64
	}
	return r, nil
}

// ListByChannel returns the category overrides under one market/channel.
func (s *CategoryStore) ListByChannel(ctx context.Context, market, channel string) ([]MarketCategoryRow, error) {
	query := `SELECT ` + categoryColumns + ` FROM market_category_config
		WHERE market_id = $1 AND channel = $2 ORDER BY category`
	rows, err := s.db.QueryContext(ctx, query, market, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides for %s/%s: %w", market, channel, err)
	}
	defer rows.Close()

	var overrides []MarketCategoryRow
	for rows.Next() {
		r, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, r)
	}
	return overrides, rows.Err()
}

// Upsert writes the override row. Nil fields are stored as NULL, which the
// resolver reads as "defer to the channel value".
func (s *CategoryStore) Upsert(ctx context.Context, r MarketCategoryRow) error {
	query := `
		INSERT INTO market_category_config (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (market_id, channel, category)
		DO UPDATE SET
			adoption_rate_override = EXCLUDED.adoption_rate_override,
			marketing_lift_override = EXCLUDED.marketing_lift_override,
			competitor_idx_override = EXCLUDED.competitor_idx_override
	`
	_, err := s.db.ExecContext(ctx, query, r.MarketID, r.Channel, r.Category,
		nullFloat(r.AdoptionRateOverride), nullFloat(r.MarketingLiftOverride), nullFloat(r.CompetitorIdxOverride))
	if err != nil {
		return fmt.Errorf("failed to upsert override %s/%s/%s: %w", r.MarketID, r.Channel, r.Category, err)
	}
	return nil
}

// Delete removes an override row.
func (s *CategoryStore) Delete(ctx context.Context, market, channel, category string) error {
	query := `DELETE FROM market_category_config WHERE market_id = $1 AND channel = $2 AND category = $3`
	result, err := s.db.ExecContext(ctx, query, market, channel, category)
	if err != nil {
		return fmt.Errorf("failed to delete override %s/%s/%s: %w", market, channel, category, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("override not found: %s/%s/%s", market, channel, category)
	}
	return nil
}

// Map loads every override row keyed for an engine snapshot.
func (s *CategoryStore) Map(ctx context.Context) (map[engine.CategoryKey]engine.MarketCategoryConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM market_category_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to load override map: %w", err)
	}
	defer rows.Close()

	byKey := make(map[engine.CategoryKey]engine.MarketCategoryConfig)
	for rows.Next() {
		r, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		key := engine.CategoryKey{Market: r.MarketID, Channel: r.Channel, Category: r.Category}
		byKey[key] = r.MarketCategoryConfig
	}
	return byKey, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
