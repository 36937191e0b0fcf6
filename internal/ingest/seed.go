package ingest

import (
	"context"
	"fmt"

	"sku_scorecard/internal/engine"
	"sku_scorecard/internal/store"
)

// defaultSettings are the spreadsheet model's named constants. Seeded
// insert-if-absent so a tuned value is never clobbered by a re-upload.
var defaultSettings = map[string]float64{
	"consumer_trend_weight":      0.2,
	"point_of_diff_weight":       0.2,
	"channel_suitability_weight": 0.2,
	"strategic_role_weight":      0.2,
	"marketing_leverage_weight":  0.2,
	"price_ladder_weight":        0.2,
	"usage_occasion_weight":      0.2,
	"channel_diff_weight":        0.2,
	"story_cohesion_weight":      0.2,
	"operational_synergy_weight": 0.2,
	"regulatory_delay_weight":    0.2,
	"retail_listing_weight":      0.2,
	"competitive_weight":         0.2,
	"supply_chain_weight":        0.2,
	"price_war_weight":           0.2,
	"launch_now_min_score":       4.0,
	"launch_now_max_risk":        2.5,
	"phase_later_min_score":      3.0,
	"phase_later_max_risk":       3.5,
	"price_multiplier":           1.0,
	"import_freight_pct":         0.1,
	"duties_taxes_pct":           0.15,
	"listing_breadth_index":      0.2,
	"gm_floor_pct":               0.35,
}

var defaultMarkets = []string{"Nepal", "India", "UAE"}

type channelDefault struct {
	name  string
	units float64
	weight float64
	adopt float64
	lift  float64
}

var defaultChannels = []channelDefault{
	{name: "E-Com", units: 500, weight: 0.35, adopt: 0.85, lift: 1.1},
	{name: "MT", units: 350, weight: 0.3, adopt: 0.7, lift: 1.0},
	{name: "GT", units: 250, weight: 0.2, adopt: 0.55, lift: 0.95},
	{name: "Rx/Clinic", units: 500, weight: 0.15, adopt: 0.6, lift: 1.05},
}

// defaultChannelRow maps the old workbook's per-channel CTS assumptions.
func defaultChannelRow(market string, c channelDefault) store.MarketChannelRow {
	row := store.MarketChannelRow{
		MarketID: market,
		Channel:  c.name,
		MarketChannelConfig: engine.MarketChannelConfig{
			BaseUnitsMonth:     c.units,
			ChannelWeight:      c.weight,
			RetailAdoptionRate: c.adopt,
			MarketingLift:      c.lift,
			FulfillmentPct:     0.02,
			ReturnsAllowancePct: 0.01,
			PromoAccrualPct:    0.02,
			TradeTermsPct:      0.08,
		},
	}
	switch c.name {
	case "E-Com":
		row.CommissionPct = 0.12
		row.FulfillmentPct = 0.03
		row.CodPct = 0.02
		row.ReturnsAllowancePct = 0.02
		row.TradeTermsPct = 0.0
		row.RebatesPct = 0.0
	case "MT":
		row.ListingFeesPct = 0.02
		row.TradeTermsPct = 0.1
		row.RebatesPct = 0.02
		row.PromoAccrualPct = 0.03
	case "GT":
		row.RebatesPct = 0.02
	case "Rx/Clinic":
		row.RebatesPct = 0.0
	}
	return row
}

// SeedDefaults inserts the baseline configuration the tool needs to work on
// a bare database, so uploading just a SKU list still produces scorecards.
// Nothing already present is overwritten.
func SeedDefaults(ctx context.Context, settings *store.SettingStore, markets *store.MarketStore, channels *store.ChannelStore) error {
	for key, value := range defaultSettings {
		if err := settings.InsertIfAbsent(ctx, key, value); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	for _, market := range defaultMarkets {
		m := engine.MarketConfig{
			MarketName:      market,
			Currency:        "USD",
			PriceMultiplier: 1.0,
			DocDistributor:  30.0,
			DocRetail:       15.0,
		}
		if err := markets.CreateIfAbsent(ctx, m); err != nil {
			return fmt.Errorf("seed markets: %w", err)
		}
		for _, c := range defaultChannels {
			if err := channels.InsertIfAbsent(ctx, defaultChannelRow(market, c)); err != nil {
				return fmt.Errorf("seed channels: %w", err)
			}
		}
	}

	return nil
}
