package engine

import "testing"

// launchReady returns a SKU and engine that qualify for "Launch Now":
// strong fit, low risk, healthy margin, no gate failures.
func launchReady() (*Engine, SkuRecord) {
	markets := map[string]MarketConfig{
		"Nepal": {MarketName: "Nepal", PriceMultiplier: 1.0},
	}
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "Nepal", Channel: "E-Com"}: {
			RetailAdoptionRate: 1.0,
			MarketingLift:      1.0,
			BaseUnitsMonth:     100,
			ChannelWeight:      1.0,
		},
	}
	sku := SkuRecord{
		SkuID:          "SKU-1",
		TargetMarket:   "Nepal",
		PrimaryChannel: "E-Com",
		LocalListPrice: 100,
		LandedCost:     40,

		ScoreConsumerTrend: 5, ScorePointOfDiff: 5, ScoreChannelSuitability: 5,
		ScoreStrategicRole: 5, ScoreMarketingLeverage: 5,
		ScorePriceLadder: 4, ScoreUsageOccasion: 4, ScoreChannelDiff: 4,
		ScoreStoryCohesion: 4, ScoreOperationalSynergy: 4,
		ScoreRegulatoryDelay: 1, ScoreRetailListing: 1, ScoreCompetitive: 1,
		ScoreSupplyChain: 1, ScorePriceWar: 1,
	}
	return New(GlobalSettings{}, markets, channels, nil), sku
}

func TestRecommend_LaunchNow(t *testing.T) {
	e, sku := launchReady()
	card := e.Calculate(sku)

	if card.Recommendation != RecLaunchNow {
		t.Fatalf("got %q, want %q (fit=%v risk=%v gm%%=%v)",
			card.Recommendation, RecLaunchNow, card.FitScore, card.RiskScore, card.GMPct)
	}
	if !card.SelectForWave1 {
		t.Fatal("Launch Now must select for wave 1")
	}
	if !card.PassRegulatory || !card.PassSupplyReady || !card.PassGMFloor {
		t.Fatalf("expected all gates to pass: %+v", card)
	}
}

func TestRecommend_IPRiskOverridesEverything(t *testing.T) {
	e, sku := launchReady()
	sku.IPRiskHigh = boolPtr(true)

	card := e.Calculate(sku)
	if card.Recommendation != RecDoNotLaunch {
		t.Fatalf("got %q, want %q", card.Recommendation, RecDoNotLaunch)
	}
	if card.SelectForWave1 {
		t.Fatal("Do Not Launch must not select for wave 1")
	}
}

func TestRecommend_RegulatoryProhibitionOverridesEverything(t *testing.T) {
	e, sku := launchReady()
	sku.RegulatoryProhibition = boolPtr(true)

	card := e.Calculate(sku)
	if card.Recommendation != RecDoNotLaunch {
		t.Fatalf("got %q, want %q", card.Recommendation, RecDoNotLaunch)
	}
}

func TestRecommend_NilGatesPass(t *testing.T) {
	e, sku := launchReady()
	sku.RegulatoryEligible = nil
	sku.SupplyReady = nil

	card := e.Calculate(sku)
	if !card.PassRegulatory || !card.PassSupplyReady {
		t.Fatal("unset gates must default to pass")
	}
	if card.Recommendation != RecLaunchNow {
		t.Fatalf("got %q, want %q", card.Recommendation, RecLaunchNow)
	}
}

func TestRecommend_ExplicitFalseGateFails(t *testing.T) {
	e, sku := launchReady()
	sku.SupplyReady = boolPtr(false)

	card := e.Calculate(sku)
	if card.PassSupplyReady {
		t.Fatal("explicit false must fail the supply gate")
	}
	if card.Recommendation != RecPhaseLater {
		t.Fatalf("got %q, want %q", card.Recommendation, RecPhaseLater)
	}
}

func TestRecommend_MarginGate(t *testing.T) {
	e, sku := launchReady()
	sku.LandedCost = 90 // gm% = 0.10, under the 0.35 floor

	card := e.Calculate(sku)
	if card.PassGMFloor {
		t.Fatalf("gm%% %v should fail the default floor", card.GMPct)
	}
	if card.Recommendation != RecPhaseLater {
		t.Fatalf("got %q, want %q", card.Recommendation, RecPhaseLater)
	}
}

func TestRecommend_HighRiskPhasesLater(t *testing.T) {
	e, sku := launchReady()
	sku.ScoreRegulatoryDelay = 5
	sku.ScoreRetailListing = 5
	sku.ScoreCompetitive = 5
	sku.ScoreSupplyChain = 5
	sku.ScorePriceWar = 5 // risk score 5.0 > 2.5

	card := e.Calculate(sku)
	if card.Recommendation != RecPhaseLater {
		t.Fatalf("got %q, want %q", card.Recommendation, RecPhaseLater)
	}
}

func TestRecommend_ThresholdsFromSettings(t *testing.T) {
	e, sku := launchReady()
	e.Settings = GlobalSettings{"launch_now_min_score": 5.5}

	card := e.Calculate(sku)
	if card.Recommendation != RecPhaseLater {
		t.Fatalf("raised threshold should demote to %q, got %q", RecPhaseLater, card.Recommendation)
	}
}
