package engine

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

// A channel whose eight CTS components sum to exactly 0.20.
func ctsChannel() MarketChannelConfig {
	return MarketChannelConfig{
		CommissionPct:       0.12,
		FulfillmentPct:      0.03,
		CodPct:              0.02,
		ReturnsAllowancePct: 0.02,
		PromoAccrualPct:     0.01,
		RetailAdoptionRate:  1.0,
		MarketingLift:       1.0,
		BaseUnitsMonth:      100,
		ChannelWeight:       1.0,
	}
}

func allFives() SkuRecord {
	return SkuRecord{
		SkuID:          "SKU-1",
		TargetMarket:   "Nepal",
		PrimaryChannel: "E-Com",
		Category:       "Supplements",

		ScoreConsumerTrend: 5, ScorePointOfDiff: 5, ScoreChannelSuitability: 5,
		ScoreStrategicRole: 5, ScoreMarketingLeverage: 5,
		ScorePriceLadder: 5, ScoreUsageOccasion: 5, ScoreChannelDiff: 5,
		ScoreStoryCohesion: 5, ScoreOperationalSynergy: 5,
		ScoreRegulatoryDelay: 5, ScoreRetailListing: 5, ScoreCompetitive: 5,
		ScoreSupplyChain: 5, ScorePriceWar: 5,
	}
}

func TestCalculate_IncompleteSkuShortCircuits(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	for _, sku := range []SkuRecord{
		{SkuID: "A"},
		{SkuID: "B", TargetMarket: "Nepal"},
		{SkuID: "C", PrimaryChannel: "E-Com"},
	} {
		card := e.Calculate(sku)
		if card.SkuID != sku.SkuID {
			t.Fatalf("sku id not carried: got %q", card.SkuID)
		}
		zero := Scorecard{SkuID: sku.SkuID}
		if card != zero {
			t.Fatalf("incomplete SKU %q did not produce a zero scorecard: %+v", sku.SkuID, card)
		}
	}
}

func TestCalculate_EndToEndFinancials(t *testing.T) {
	markets := map[string]MarketConfig{
		"Nepal": {MarketName: "Nepal", PriceMultiplier: 1.1, ImportFreightPct: 0.1, DutiesTaxesPct: 0.15},
	}
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: ctsChannel(),
	}
	e := New(GlobalSettings{}, markets, channels, nil)

	sku := SkuRecord{
		SkuID:          "SKU-1",
		TargetMarket:   "Nepal",
		PrimaryChannel: "E-Com",
		LocalListPrice: 100,
		LandedCost:     40,
	}
	card := e.Calculate(sku)

	// adjusted price 110, imported cost 50.6, margin 110 - 72.6 = 37.4
	nearlyEqual(t, "GMDollarPerUnit", card.GMDollarPerUnit, 37.4)
	nearlyEqual(t, "GMPct", card.GMPct, 0.34)
}

func TestCalculate_UnconfiguredMarketAndChannelPassThrough(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	sku := SkuRecord{
		SkuID:          "SKU-1",
		TargetMarket:   "Atlantis",
		PrimaryChannel: "E-Com",
		LocalListPrice: 100,
		LandedCost:     40,
	}
	card := e.Calculate(sku)

	// multiplier 1.0, freight and duties 0, CTS 0
	nearlyEqual(t, "GMDollarPerUnit", card.GMDollarPerUnit, 60)
	nearlyEqual(t, "GMPct", card.GMPct, 0.6)
}

func TestCalculate_GMPctZeroWhenPriceZero(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	for _, cost := range []float64{0, 1, 40, 1e6} {
		card := e.Calculate(SkuRecord{
			SkuID:          "SKU-1",
			TargetMarket:   "Nepal",
			PrimaryChannel: "GT",
			LocalListPrice: 0,
			LandedCost:     cost,
		})
		nearlyEqual(t, "GMPct", card.GMPct, 0)
	}
}

func TestCalculate_AllRatingsUnsetScoreZero(t *testing.T) {
	// Configured weights must not resurrect missing ratings.
	settings := GlobalSettings{
		"consumer_trend_weight": 0.9,
		"price_ladder_weight":   0.9,
		"regulatory_delay_weight": 0.9,
	}
	e := New(settings, nil, nil, nil)

	card := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "MT"})
	nearlyEqual(t, "FitScore", card.FitScore, 0)
	nearlyEqual(t, "SynergyScore", card.SynergyScore, 0)
	nearlyEqual(t, "RiskScore", card.RiskScore, 0)
}

func TestCalculate_AllFivesDefaultWeights(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	card := e.Calculate(allFives())
	nearlyEqual(t, "FitScore", card.FitScore, 5)
	nearlyEqual(t, "SynergyScore", card.SynergyScore, 5)
	nearlyEqual(t, "RiskScore", card.RiskScore, 5)
}

func TestCalculate_ChannelWeightDefaultsToOne(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	card := e.Calculate(allFives())
	nearlyEqual(t, "ChannelWeightedScore", card.ChannelWeightedScore, card.FitScore)
}

func TestCalculate_ChannelWeightApplied(t *testing.T) {
	ch := ctsChannel()
	ch.ChannelWeight = 0.35
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: ch,
	}
	e := New(GlobalSettings{}, nil, channels, nil)

	card := e.Calculate(allFives())
	nearlyEqual(t, "ChannelWeightedScore", card.ChannelWeightedScore, 5*0.35)
}

func TestCalculate_ScenarioOrdering(t *testing.T) {
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: ctsChannel(),
	}
	e := New(GlobalSettings{}, nil, channels, nil)

	sku := allFives()
	sku.LocalListPrice = 100
	sku.LandedCost = 40
	card := e.Calculate(sku)

	if card.AdjUnitsBase <= 0 {
		t.Fatalf("expected positive base units, got %v", card.AdjUnitsBase)
	}
	if !(card.AdjUnitsWorst <= card.AdjUnitsBase && card.AdjUnitsBase <= card.AdjUnitsBest) {
		t.Fatalf("scenario ordering violated: worst=%v base=%v best=%v",
			card.AdjUnitsWorst, card.AdjUnitsBase, card.AdjUnitsBest)
	}
}

func TestCalculate_RollupsUseBaseMarginPerUnit(t *testing.T) {
	markets := map[string]MarketConfig{
		"Nepal": {MarketName: "Nepal", PriceMultiplier: 1.1, ImportFreightPct: 0.1, DutiesTaxesPct: 0.15},
	}
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: ctsChannel(),
	}
	e := New(GlobalSettings{}, markets, channels, nil)

	sku := allFives()
	sku.LocalListPrice = 100
	sku.LandedCost = 40
	card := e.Calculate(sku)

	nearlyEqual(t, "MonthlyGMDollar", card.MonthlyGMDollar, card.MonthlyGMBase)
	nearlyEqual(t, "MonthlyGMBase", card.MonthlyGMBase, card.AdjUnitsBase*card.GMDollarPerUnit)
	// Best/worst reuse the base margin per unit; only volume varies.
	nearlyEqual(t, "MonthlyGMBest", card.MonthlyGMBest, card.AdjUnitsBest*card.GMDollarPerUnit)
	nearlyEqual(t, "MonthlyGMWorst", card.MonthlyGMWorst, card.AdjUnitsWorst*card.GMDollarPerUnit)
	nearlyEqual(t, "MonthlyRevenue", card.MonthlyRevenue, card.AdjUnitsBase*110)
}

func TestCalculate_RampSeam(t *testing.T) {
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: ctsChannel(),
	}

	plain := New(GlobalSettings{}, nil, channels, nil)
	ramped := New(GlobalSettings{}, nil, channels, nil)
	ramped.Ramp = func(rampMonth int) float64 {
		if rampMonth != 3 {
			t.Fatalf("ramp month not forwarded, got %d", rampMonth)
		}
		return 0.5
	}

	sku := allFives()
	sku.RampMonth = 3

	base := plain.Calculate(sku)
	halved := ramped.Calculate(sku)
	nearlyEqual(t, "ramped base units", halved.AdjUnitsBase, base.AdjUnitsBase*0.5)
}

func TestCalculateAll_OneCardPerSku(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)

	skus := []SkuRecord{
		{SkuID: "A", TargetMarket: "Nepal", PrimaryChannel: "MT"},
		{SkuID: "B"},
		{SkuID: "C", TargetMarket: "UAE", PrimaryChannel: "GT"},
	}
	cards := e.CalculateAll(skus)
	if len(cards) != len(skus) {
		t.Fatalf("got %d cards, want %d", len(cards), len(skus))
	}
	for i, card := range cards {
		if card.SkuID != skus[i].SkuID {
			t.Fatalf("card %d has sku id %q, want %q", i, card.SkuID, skus[i].SkuID)
		}
	}
}
