package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

type SkuStore struct {
	db *sql.DB
}

func NewSkuStore(db *sql.DB) *SkuStore {
	return &SkuStore{db: db}
}

const skuColumns = `sku_id, sku_name, brand, category, target_market, primary_channel,
	local_list_price, landed_cost,
	score_consumer_trend, score_point_of_diff, score_channel_suitability,
	score_strategic_role, score_marketing_leverage,
	score_price_ladder, score_usage_occasion, score_channel_diff,
	score_story_cohesion, score_operational_synergy,
	score_regulatory_delay, score_retail_listing, score_competitive,
	score_supply_chain, score_price_war,
	regulatory_eligible, regulatory_prohibition, ip_risk_high, supply_ready,
	moq, lead_time_days, shelf_life_months, ramp_month,
	pass_portfolio_balance, suggested_launch_wave`

// scanSku maps nullable columns onto engine semantics: NULL ratings and
// numerics become 0, NULL gates stay nil pointers.
func scanSku(row interface{ Scan(...any) error }) (engine.SkuRecord, error) {
	var sku engine.SkuRecord
	var brand, targetMarket, primaryChannel, launchWave sql.NullString
	var listPrice, landedCost sql.NullFloat64
	ratings := make([]sql.NullInt64, 15)
	var moq, leadTime, shelfLife, rampMonth sql.NullInt64
	var regEligible, regProhibition, ipRisk, supplyReady, portfolioBalance sql.NullBool

	dest := []any{
		&sku.SkuID, &sku.SkuName, &brand, &sku.Category, &targetMarket, &primaryChannel,
		&listPrice, &landedCost,
	}
	for i := range ratings {
		dest = append(dest, &ratings[i])
	}
	dest = append(dest,
		&regEligible, &regProhibition, &ipRisk, &supplyReady,
		&moq, &leadTime, &shelfLife, &rampMonth,
		&portfolioBalance, &launchWave,
	)

	if err := row.Scan(dest...); err != nil {
		return sku, err
	}

	sku.Brand = brand.String
	sku.TargetMarket = targetMarket.String
	sku.PrimaryChannel = primaryChannel.String
	sku.SuggestedLaunchWave = launchWave.String
	sku.LocalListPrice = listPrice.Float64
	sku.LandedCost = landedCost.Float64

	ints := []*int{
		&sku.ScoreConsumerTrend, &sku.ScorePointOfDiff, &sku.ScoreChannelSuitability,
		&sku.ScoreStrategicRole, &sku.ScoreMarketingLeverage,
		&sku.ScorePriceLadder, &sku.ScoreUsageOccasion, &sku.ScoreChannelDiff,
		&sku.ScoreStoryCohesion, &sku.ScoreOperationalSynergy,
		&sku.ScoreRegulatoryDelay, &sku.ScoreRetailListing, &sku.ScoreCompetitive,
		&sku.ScoreSupplyChain, &sku.ScorePriceWar,
	}
	for i, target := range ints {
		*target = int(ratings[i].Int64)
	}

	sku.MOQ = int(moq.Int64)
	sku.LeadTimeDays = int(leadTime.Int64)
	sku.ShelfLifeMonths = int(shelfLife.Int64)
	sku.RampMonth = int(rampMonth.Int64)

	sku.RegulatoryEligible = boolPtrOf(regEligible)
	sku.RegulatoryProhibition = boolPtrOf(regProhibition)
	sku.IPRiskHigh = boolPtrOf(ipRisk)
	sku.SupplyReady = boolPtrOf(supplyReady)
	sku.PassPortfolioBalance = boolPtrOf(portfolioBalance)

	return sku, nil
}

// List returns every SKU under evaluation.
func (s *SkuStore) List(ctx context.Context) ([]engine.SkuRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+skuColumns+` FROM sku_records ORDER BY sku_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}
	defer rows.Close()

	var skus []engine.SkuRecord
	for rows.Next() {
		sku, err := scanSku(rows)
		if err != nil {
			return nil, err
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// Get returns one SKU, or (nil, nil) when it does not exist.
func (s *SkuStore) Get(ctx context.Context, skuID string) (*engine.SkuRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+skuColumns+` FROM sku_records WHERE sku_id = $1`, skuID)
	sku, err := scanSku(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get sku %s: %w", skuID, err)
	}
	return &sku, nil
}

// Upsert writes the full SKU row, replacing an existing record wholesale.
func (s *SkuStore) Upsert(ctx context.Context, sku engine.SkuRecord) error {
	query := `
		INSERT INTO sku_records (` + skuColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23,
			$24, $25, $26, $27, $28, $29, $30, $31, $32, $33)
		ON CONFLICT (sku_id)
		DO UPDATE SET
			sku_name = EXCLUDED.sku_name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			target_market = EXCLUDED.target_market,
			primary_channel = EXCLUDED.primary_channel,
			local_list_price = EXCLUDED.local_list_price,
			landed_cost = EXCLUDED.landed_cost,
			score_consumer_trend = EXCLUDED.score_consumer_trend,
			score_point_of_diff = EXCLUDED.score_point_of_diff,
			score_channel_suitability = EXCLUDED.score_channel_suitability,
			score_strategic_role = EXCLUDED.score_strategic_role,
			score_marketing_leverage = EXCLUDED.score_marketing_leverage,
			score_price_ladder = EXCLUDED.score_price_ladder,
			score_usage_occasion = EXCLUDED.score_usage_occasion,
			score_channel_diff = EXCLUDED.score_channel_diff,
			score_story_cohesion = EXCLUDED.score_story_cohesion,
			score_operational_synergy = EXCLUDED.score_operational_synergy,
			score_regulatory_delay = EXCLUDED.score_regulatory_delay,
			score_retail_listing = EXCLUDED.score_retail_listing,
			score_competitive = EXCLUDED.score_competitive,
			score_supply_chain = EXCLUDED.score_supply_chain,
			score_price_war = EXCLUDED.score_price_war,
			regulatory_eligible = EXCLUDED.regulatory_eligible,
			regulatory_prohibition = EXCLUDED.regulatory_prohibition,
			ip_risk_high = EXCLUDED.ip_risk_high,
			supply_ready = EXCLUDED.supply_ready,
			moq = EXCLUDED.moq,
			lead_time_days = EXCLUDED.lead_time_days,
			shelf_life_months = EXCLUDED.shelf_life_months,
			ramp_month = EXCLUDED.ramp_month,
			pass_portfolio_balance = EXCLUDED.pass_portfolio_balance,
			suggested_launch_wave = EXCLUDED.suggested_launch_wave,
			updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query,
		sku.SkuID, sku.SkuName, nullString(sku.Brand), sku.Category,
		nullString(sku.TargetMarket), nullString(sku.PrimaryChannel),
		sku.LocalListPrice, sku.LandedCost,
		sku.ScoreConsumerTrend, sku.ScorePointOfDiff, sku.ScoreChannelSuitability,
		sku.ScoreStrategicRole, sku.ScoreMarketingLeverage,
		sku.ScorePriceLadder, sku.ScoreUsageOccasion, sku.ScoreChannelDiff,
		sku.ScoreStoryCohesion, sku.ScoreOperationalSynergy,
		sku.ScoreRegulatoryDelay, sku.ScoreRetailListing, sku.ScoreCompetitive,
		sku.ScoreSupplyChain, sku.ScorePriceWar,
		nullBool(sku.RegulatoryEligible), nullBool(sku.RegulatoryProhibition),
		nullBool(sku.IPRiskHigh), nullBool(sku.SupplyReady),
		sku.MOQ, sku.LeadTimeDays, sku.ShelfLifeMonths, sku.RampMonth,
		nullBool(sku.PassPortfolioBalance), nullString(sku.SuggestedLaunchWave))
	if err != nil {
		return fmt.Errorf("failed to upsert sku %s: %w", sku.SkuID, err)
	}
	return nil
}

// Delete removes a SKU; its scorecard cascades in the schema.
func (s *SkuStore) Delete(ctx context.Context, skuID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sku_records WHERE sku_id = $1`, skuID)
	if err != nil {
		return fmt.Errorf("failed to delete sku %s: %w", skuID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("sku not found: %s", skuID)
	}
	return nil
}

func boolPtrOf(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
