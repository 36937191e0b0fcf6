package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

type ScorecardStore struct {
	db *sql.DB
}

func NewScorecardStore(db *sql.DB) *ScorecardStore {
	return &ScorecardStore{db: db}
}

const scorecardColumns = `sku_id, gm_dollar_per_unit, gm_pct,
	fit_score, channel_weighted_score, synergy_score, risk_score, risk_factor,
	adj_units_base, adj_units_best, adj_units_worst,
	monthly_revenue, monthly_gm_dollar, monthly_gm_base, monthly_gm_best, monthly_gm_worst,
	pass_regulatory, pass_supply_ready, pass_gm_floor,
	final_recommendation, select_for_wave_1`

func scanScorecard(row interface{ Scan(...any) error }) (engine.Scorecard, error) {
	var c engine.Scorecard
	err := row.Scan(&c.SkuID, &c.GMDollarPerUnit, &c.GMPct,
		&c.FitScore, &c.ChannelWeightedScore, &c.SynergyScore, &c.RiskScore, &c.RiskFactor,
		&c.AdjUnitsBase, &c.AdjUnitsBest, &c.AdjUnitsWorst,
		&c.MonthlyRevenue, &c.MonthlyGMDollar, &c.MonthlyGMBase, &c.MonthlyGMBest, &c.MonthlyGMWorst,
		&c.PassRegulatory, &c.PassSupplyReady, &c.PassGMFloor,
		&c.Recommendation, &c.SelectForWave1)
	return c, err
}

// Upsert replaces the cached scorecard for a SKU in one statement. The old
// row survives untouched unless the new one lands, so a failed recompute
// never leaves a SKU without a result.
func (s *ScorecardStore) Upsert(ctx context.Context, c engine.Scorecard) error {
	query := `
		INSERT INTO sku_scorecards (` + scorecardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (sku_id)
		DO UPDATE SET
			gm_dollar_per_unit = EXCLUDED.gm_dollar_per_unit,
			gm_pct = EXCLUDED.gm_pct,
			fit_score = EXCLUDED.fit_score,
			channel_weighted_score = EXCLUDED.channel_weighted_score,
			synergy_score = EXCLUDED.synergy_score,
			risk_score = EXCLUDED.risk_score,
			risk_factor = EXCLUDED.risk_factor,
			adj_units_base = EXCLUDED.adj_units_base,
			adj_units_best = EXCLUDED.adj_units_best,
			adj_units_worst = EXCLUDED.adj_units_worst,
			monthly_revenue = EXCLUDED.monthly_revenue,
			monthly_gm_dollar = EXCLUDED.monthly_gm_dollar,
			monthly_gm_base = EXCLUDED.monthly_gm_base,
			monthly_gm_best = EXCLUDED.monthly_gm_best,
			monthly_gm_worst = EXCLUDED.monthly_gm_worst,
			pass_regulatory = EXCLUDED.pass_regulatory,
			pass_supply_ready = EXCLUDED.pass_supply_ready,
			pass_gm_floor = EXCLUDED.pass_gm_floor,
			final_recommendation = EXCLUDED.final_recommendation,
			select_for_wave_1 = EXCLUDED.select_for_wave_1,
			updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query,
		c.SkuID, c.GMDollarPerUnit, c.GMPct,
		c.FitScore, c.ChannelWeightedScore, c.SynergyScore, c.RiskScore, c.RiskFactor,
		c.AdjUnitsBase, c.AdjUnitsBest, c.AdjUnitsWorst,
		c.MonthlyRevenue, c.MonthlyGMDollar, c.MonthlyGMBase, c.MonthlyGMBest, c.MonthlyGMWorst,
		c.PassRegulatory, c.PassSupplyReady, c.PassGMFloor,
		c.Recommendation, c.SelectForWave1)
	if err != nil {
		return fmt.Errorf("failed to upsert scorecard %s: %w", c.SkuID, err)
	}
	return nil
}

// Get returns the cached scorecard for a SKU, or (nil, nil) when no run has
// produced one yet.
func (s *ScorecardStore) Get(ctx context.Context, skuID string) (*engine.Scorecard, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+scorecardColumns+` FROM sku_scorecards WHERE sku_id = $1`, skuID)
	c, err := scanScorecard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get scorecard %s: %w", skuID, err)
	}
	return &c, nil
}

// List returns every cached scorecard.
func (s *ScorecardStore) List(ctx context.Context) ([]engine.Scorecard, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scorecardColumns+` FROM sku_scorecards ORDER BY sku_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}
	defer rows.Close()

	var cards []engine.Scorecard
	for rows.Next() {
		c, err := scanScorecard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
