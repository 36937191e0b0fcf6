package store

import (
	"context"
	"database/sql"
	"fmt"

	"sku_scorecard/internal/engine"
)

// MarketChannelRow mirrors one market_channel_config row: the composite key
// plus the engine-facing attributes.
type MarketChannelRow struct {
	MarketID string `json:"market_id"`
	Channel  string `json:"channel"`
	engine.MarketChannelConfig
}

type ChannelStore struct {
	db *sql.DB
}

func NewChannelStore(db *sql.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

const channelColumns = `market_id, channel, commission_pct, fulfillment_pct, cod_pct,
	returns_allowance_pct, listing_fees_pct, trade_terms_pct, rebates_pct, promo_accrual_pct,
	retail_adoption_rate, marketing_lift, base_units_month, channel_weight, competitor_activity_idx`

func scanChannel(row interface{ Scan(...any) error }) (MarketChannelRow, error) {
	var r MarketChannelRow
	err := row.Scan(&r.MarketID, &r.Channel,
		&r.CommissionPct, &r.FulfillmentPct, &r.CodPct,
		&r.ReturnsAllowancePct, &r.ListingFeesPct, &r.TradeTermsPct,
		&r.RebatesPct, &r.PromoAccrualPct,
		&r.RetailAdoptionRate, &r.MarketingLift, &r.BaseUnitsMonth,
		&r.ChannelWeight, &r.CompetitorActivityIdx)
	return r, err
}

// ListByMarket returns the channel rows configured under one market.
func (s *ChannelStore) ListByMarket(ctx context.Context, market string) ([]MarketChannelRow, error) {
	query := `SELECT ` + channelColumns + ` FROM market_channel_config WHERE market_id = $1 ORDER BY channel`
	rows, err := s.db.QueryContext(ctx, query, market)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels for %s: %w", market, err)
	}
	defer rows.Close()

	var channels []MarketChannelRow
	for rows.Next() {
		r, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, r)
	}
	return channels, rows.Err()
}

// Get returns one channel row, or (nil, nil) when it does not exist.
func (s *ChannelStore) Get(ctx context.Context, market, channel string) (*MarketChannelRow, error) {
	query := `SELECT ` + channelColumns + ` FROM market_channel_config WHERE market_id = $1 AND channel = $2`
	r, err := scanChannel(s.db.QueryRowContext(ctx, query, market, channel))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get channel %s/%s: %w", market, channel, err)
	}
	return &r, nil
}

// Upsert writes the full channel row, creating it when it doesn't exist yet.
func (s *ChannelStore) Upsert(ctx context.Context, r MarketChannelRow) error {
	query := `
		INSERT INTO market_channel_config (` + channelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (market_id, channel)
		DO UPDATE SET
			commission_pct = EXCLUDED.commission_pct,
			fulfillment_pct = EXCLUDED.fulfillment_pct,
			cod_pct = EXCLUDED.cod_pct,
			returns_allowance_pct = EXCLUDED.returns_allowance_pct,
			listing_fees_pct = EXCLUDED.listing_fees_pct,
			trade_terms_pct = EXCLUDED.trade_terms_pct,
			rebates_pct = EXCLUDED.rebates_pct,
			promo_accrual_pct = EXCLUDED.promo_accrual_pct,
			retail_adoption_rate = EXCLUDED.retail_adoption_rate,
			marketing_lift = EXCLUDED.marketing_lift,
			base_units_month = EXCLUDED.base_units_month,
			channel_weight = EXCLUDED.channel_weight,
			competitor_activity_idx = EXCLUDED.competitor_activity_idx
	`
	_, err := s.db.ExecContext(ctx, query, r.MarketID, r.Channel,
		r.CommissionPct, r.FulfillmentPct, r.CodPct,
		r.ReturnsAllowancePct, r.ListingFeesPct, r.TradeTermsPct,
		r.RebatesPct, r.PromoAccrualPct,
		r.RetailAdoptionRate, r.MarketingLift, r.BaseUnitsMonth,
		r.ChannelWeight, r.CompetitorActivityIdx)
	if err != nil {
		return fmt.Errorf("failed to upsert channel %s/%s: %w", r.MarketID, r.Channel, err)
	}
	return nil
}

// InsertIfAbsent seeds a channel row without touching a tuned one.
func (s *ChannelStore) InsertIfAbsent(ctx context.Context, r MarketChannelRow) error {
	query := `
		INSERT INTO market_channel_config (` + channelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (market_id, channel) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, r.MarketID, r.Channel,
		r.CommissionPct, r.FulfillmentPct, r.CodPct,
		r.ReturnsAllowancePct, r.ListingFeesPct, r.TradeTermsPct,
		r.RebatesPct, r.PromoAccrualPct,
		r.RetailAdoptionRate, r.MarketingLift, r.BaseUnitsMonth,
		r.ChannelWeight, r.CompetitorActivityIdx)
	if err != nil {
		return fmt.Errorf("failed to seed channel %s/%s: %w", r.MarketID, r.Channel, err)
	}
	return nil
}

// Map loads every channel row keyed for an engine snapshot.
func (s *ChannelStore) Map(ctx context.Context) (map[engine.ChannelKey]engine.MarketChannelConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+channelColumns+` FROM market_channel_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel map: %w", err)
	}
	defer rows.Close()

	byKey := make(map[engine.ChannelKey]engine.MarketChannelConfig)
	for rows.Next() {
		r, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		byKey[engine.ChannelKey{Market: r.MarketID, Channel: r.Channel}] = r.MarketChannelConfig
	}
	return byKey, rows.Err()
}
