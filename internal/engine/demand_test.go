package engine

import "testing"

func demandChannel() map[ChannelKey]MarketChannelConfig {
	return map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: {
			RetailAdoptionRate: 1.0,
			MarketingLift:      1.0,
			BaseUnitsMonth:     100,
			ChannelWeight:      1.0,
		},
	}
}

func TestDemand_BaseUnitsHandComputed(t *testing.T) {
	e := New(GlobalSettings{}, nil, demandChannel(), nil)

	// All ratings zero: risk factor = max(0.6, 1 - 0.25*(0-1)) = 1.25,
	// score multiplier floors at 0.6, every other factor is 1.0, so
	// base units = 100 * 0.6 * 1.25 = 75.
	sku := SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com"}
	card := e.Calculate(sku)

	nearlyEqual(t, "RiskFactor", card.RiskFactor, 1.25)
	nearlyEqual(t, "AdjUnitsBase", card.AdjUnitsBase, 75)
}

func TestDemand_RiskFactorFloors(t *testing.T) {
	e := New(GlobalSettings{}, nil, demandChannel(), nil)

	// Risk score 5 drives 1 - 0.25*4 = 0, floored at 0.6.
	card := e.Calculate(allFives())
	nearlyEqual(t, "RiskFactor", card.RiskFactor, 0.6)
}

func TestDemand_MarketingFactorClamped(t *testing.T) {
	channels := demandChannel()

	high := channels[ChannelKey{Market: "Nepal", Channel: "E-Com"}]
	high.MarketingLift = 2.0
	low := high
	low.MarketingLift = 0.5

	sku := SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com"}

	baseline := New(GlobalSettings{}, nil, demandChannel(), nil).Calculate(sku)

	channels[ChannelKey{Market: "Nepal", Channel: "E-Com"}] = high
	clampedHigh := New(GlobalSettings{}, nil, channels, nil).Calculate(sku)
	nearlyEqual(t, "clamped high", clampedHigh.AdjUnitsBase, baseline.AdjUnitsBase*1.15)

	channels[ChannelKey{Market: "Nepal", Channel: "E-Com"}] = low
	clampedLow := New(GlobalSettings{}, nil, channels, nil).Calculate(sku)
	nearlyEqual(t, "clamped low", clampedLow.AdjUnitsBase, baseline.AdjUnitsBase*0.85)
}

func TestDemand_CompetitorPenaltyCapped(t *testing.T) {
	// Heavy weights and a hot competitor index blow far past the cap;
	// the factor must bottom out at 1 - 0.4 = 0.6.
	settings := GlobalSettings{
		"competitive_weight": 1.0,
		"price_war_weight":   1.0,
	}
	channels := demandChannel()
	ch := channels[ChannelKey{Market: "Nepal", Channel: "E-Com"}]
	ch.CompetitorActivityIdx = 1.0
	channels[ChannelKey{Market: "Nepal", Channel: "E-Com"}] = ch

	e := New(settings, nil, channels, nil)

	sku := allFives()
	card := e.Calculate(sku)

	// risk score with these weights: 5*1 + 5*1 + three layers at 0.2 = 13.
	nearlyEqual(t, "RiskScore", card.RiskScore, 5*1.0+5*1.0+3*5*0.2)

	// common stack: 100 * scoreMult(1.0) * riskFactor(0.6) * marketing(1.0)
	// * adoption(1.0) * competitor(0.6) = 36.
	nearlyEqual(t, "AdjUnitsBase", card.AdjUnitsBase, 36)
}

func TestDemand_ScenarioKnobsFromSettings(t *testing.T) {
	// Collapse best and worst onto base and the three unit figures must
	// agree exactly.
	settings := GlobalSettings{
		"scenario_best_price_delta":     0.0,
		"scenario_best_marketing_mult":  1.0,
		"scenario_best_adoption_mult":   1.0,
		"scenario_best_competitor_mult": 1.0,
		"scenario_worst_price_delta":     0.0,
		"scenario_worst_marketing_mult":  1.0,
		"scenario_worst_adoption_mult":   1.0,
		"scenario_worst_competitor_mult": 1.0,
	}
	e := New(settings, nil, demandChannel(), nil)

	card := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com"})
	nearlyEqual(t, "best == base", card.AdjUnitsBest, card.AdjUnitsBase)
	nearlyEqual(t, "worst == base", card.AdjUnitsWorst, card.AdjUnitsBase)
}

func TestDemand_GlobalPriceAdjustmentSuppressesUnits(t *testing.T) {
	plain := New(GlobalSettings{}, nil, demandChannel(), nil)
	raised := New(GlobalSettings{"global_price_adjustment_pct": 0.10}, nil, demandChannel(), nil)

	sku := SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com"}
	if raised.Calculate(sku).AdjUnitsBase >= plain.Calculate(sku).AdjUnitsBase {
		t.Fatal("raising the effective price index should shrink demand")
	}
}

func TestDemand_CategoryOverrideReachesUnits(t *testing.T) {
	categories := map[CategoryKey]MarketCategoryConfig{
		{Market: "Nepal", Channel: "E-Com", Category: "Snacks"}: {
			AdoptionRateOverride: floatPtr(0.5),
		},
	}
	e := New(GlobalSettings{}, nil, demandChannel(), categories)

	base := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com", Category: "Beverages"})
	halved := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com", Category: "Snacks"})
	nearlyEqual(t, "override halves adoption", halved.AdjUnitsBase, base.AdjUnitsBase*0.5)
}

func TestDemand_BlankCategoryResolvesAsUnknown(t *testing.T) {
	categories := map[CategoryKey]MarketCategoryConfig{
		{Market: "Nepal", Channel: "E-Com", Category: "Unknown"}: {
			AdoptionRateOverride: floatPtr(0.5),
		},
	}
	e := New(GlobalSettings{}, nil, demandChannel(), categories)

	blank := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com"})
	named := e.Calculate(SkuRecord{SkuID: "S", TargetMarket: "Nepal", PrimaryChannel: "E-Com", Category: "Unknown"})
	nearlyEqual(t, "blank category uses Unknown bucket", blank.AdjUnitsBase, named.AdjUnitsBase)
}
