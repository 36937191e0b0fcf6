package engine

// boolOr reads a nullable gate. Blank on upload means "not disqualified";
// only an explicit false fails the gate.
func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// recommend fills the gate flags, the final recommendation and the wave-1
// selection. First match wins:
//
//  1. high IP risk or a regulatory prohibition -> Do Not Launch
//  2. all gates pass, fit score high enough, risk low enough -> Launch Now
//  3. everything else -> Phase Later
func (e *Engine) recommend(sku SkuRecord, card *Scorecard) {
	minScore := e.Settings.Value("launch_now_min_score", 4.0)
	maxRisk := e.Settings.Value("launch_now_max_risk", 2.5)
	gmFloor := e.Settings.Value("gm_floor_pct", 0.35)

	card.PassRegulatory = boolOr(sku.RegulatoryEligible, true)
	card.PassSupplyReady = boolOr(sku.SupplyReady, true)
	card.PassGMFloor = card.GMPct >= gmFloor

	switch {
	case boolOr(sku.IPRiskHigh, false) || boolOr(sku.RegulatoryProhibition, false):
		card.Recommendation = RecDoNotLaunch
		card.SelectForWave1 = false
	case card.PassRegulatory && card.PassSupplyReady && card.PassGMFloor &&
		card.FitScore >= minScore && card.RiskScore <= maxRisk:
		card.Recommendation = RecLaunchNow
		card.SelectForWave1 = true
	default:
		card.Recommendation = RecPhaseLater
		card.SelectForWave1 = false
	}
}
