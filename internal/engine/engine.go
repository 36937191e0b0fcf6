// Package engine turns raw SKU attributes plus hierarchical market
// configuration into a full launch scorecard: adjusted financials, layered
// fit/synergy/risk scores, elasticity-adjusted demand under three scenarios
// and a final recommendation.
//
// The engine is a pure function of its snapshot: it performs no I/O, holds
// no mutable state across calls, and is safe to run concurrently across
// SKUs. Missing configuration at any level degrades to documented defaults,
// never to an error.
package engine

// Engine is one immutable configuration snapshot. Build it once from the
// stores, run it over any number of SKUs, throw it away.
type Engine struct {
	Settings   GlobalSettings
	Markets    map[string]MarketConfig
	Channels   map[ChannelKey]MarketChannelConfig
	Categories map[CategoryKey]MarketCategoryConfig

	// Ramp is the month-indexed ramp curve seam. Leave nil for the
	// current constant 1.0 behavior.
	Ramp func(rampMonth int) float64
}

// New builds an engine over the given configuration maps. Nil maps are
// fine; every lookup has a fallback.
func New(settings GlobalSettings, markets map[string]MarketConfig, channels map[ChannelKey]MarketChannelConfig, categories map[CategoryKey]MarketCategoryConfig) *Engine {
	return &Engine{
		Settings:   settings,
		Markets:    markets,
		Channels:   channels,
		Categories: categories,
	}
}

// Calculate produces the full scorecard for one SKU. It is total: no
// combination of present or absent configuration makes it fail. A SKU
// missing its target market or primary channel short-circuits to an
// all-zero scorecard, which is the documented "incomplete SKU" outcome,
// not an error.
func (e *Engine) Calculate(sku SkuRecord) Scorecard {
	card := Scorecard{SkuID: sku.SkuID}

	if sku.TargetMarket == "" || sku.PrimaryChannel == "" {
		return card
	}

	var market *MarketConfig
	if m, ok := e.Markets[sku.TargetMarket]; ok {
		market = &m
	}
	var channel *MarketChannelConfig
	if c, ok := e.Channels[ChannelKey{Market: sku.TargetMarket, Channel: sku.PrimaryChannel}]; ok {
		channel = &c
	}

	// Money first.
	fin := computeFinancials(sku, market, channel)
	card.GMDollarPerUnit = fin.GMDollarPerUnit
	card.GMPct = fin.GMPct

	// Score layers.
	card.FitScore = e.fitScore(sku)
	card.SynergyScore = e.synergyScore(sku)
	card.RiskScore = e.riskScore(sku)

	channelWeight := 1.0
	if channel != nil {
		channelWeight = channel.ChannelWeight
	}
	card.ChannelWeightedScore = card.FitScore * channelWeight

	// Demand under the three scenarios.
	d := e.computeDemand(sku, channel, card.RiskScore, card.ChannelWeightedScore)
	card.RiskFactor = d.RiskFactor
	card.AdjUnitsBase = d.UnitsBase
	card.AdjUnitsBest = d.UnitsBest
	card.AdjUnitsWorst = d.UnitsWorst

	// Rollups use base-scenario volume; margin per unit stays the base
	// figure for best/worst as well, only volume varies.
	card.MonthlyRevenue = d.UnitsBase * fin.AdjListPrice
	card.MonthlyGMDollar = d.UnitsBase * fin.GMDollarPerUnit
	card.MonthlyGMBase = d.UnitsBase * fin.GMDollarPerUnit
	card.MonthlyGMBest = d.UnitsBest * fin.GMDollarPerUnit
	card.MonthlyGMWorst = d.UnitsWorst * fin.GMDollarPerUnit

	e.recommend(sku, &card)

	return card
}

// CalculateAll maps Calculate over a SKU batch, one scorecard per record.
// Persisting or merging the results is the caller's problem.
func (e *Engine) CalculateAll(skus []SkuRecord) []Scorecard {
	cards := make([]Scorecard, len(skus))
	for i, sku := range skus {
		cards[i] = e.Calculate(sku)
	}
	return cards
}
