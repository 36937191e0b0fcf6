package engine

import "math"

// scenarioParams are the knobs of one demand scenario. Each knob can be
// tuned through global settings under scenario_<name>_<knob>; the defaults
// below reproduce the planning team's original base/best/worst spread.
type scenarioParams struct {
	PriceDelta     float64
	MarketingMult  float64
	AdoptionMult   float64
	CompetitorMult float64
}

var defaultScenarios = map[string]scenarioParams{
	"base":  {PriceDelta: 0.0, MarketingMult: 1.0, AdoptionMult: 1.0, CompetitorMult: 1.0},
	"best":  {PriceDelta: -0.05, MarketingMult: 1.15, AdoptionMult: 1.2, CompetitorMult: 0.9},
	"worst": {PriceDelta: 0.10, MarketingMult: 0.85, AdoptionMult: 0.8, CompetitorMult: 1.2},
}

func (e *Engine) scenario(name string) scenarioParams {
	def := defaultScenarios[name]
	prefix := "scenario_" + name + "_"
	return scenarioParams{
		PriceDelta:     e.Settings.Value(prefix+"price_delta", def.PriceDelta),
		MarketingMult:  e.Settings.Value(prefix+"marketing_mult", def.MarketingMult),
		AdoptionMult:   e.Settings.Value(prefix+"adoption_mult", def.AdoptionMult),
		CompetitorMult: e.Settings.Value(prefix+"competitor_mult", def.CompetitorMult),
	}
}

// demand is the elasticity-adjusted unit picture for one SKU.
type demand struct {
	RiskFactor float64
	UnitsBase  float64
	UnitsBest  float64
	UnitsWorst float64
}

// rampFactor is the month-indexed ramp seam. No curve is defined yet, so the
// default is a constant 1.0 pass-through.
func (e *Engine) rampFactor(rampMonth int) float64 {
	if e.Ramp != nil {
		return e.Ramp(rampMonth)
	}
	return 1.0
}

// computeDemand builds the common multiplier stack and applies it under the
// three scenarios. Only volume varies by scenario; margin per unit is taken
// from the base financials by the caller.
func (e *Engine) computeDemand(sku SkuRecord, channel *MarketChannelConfig, riskScore, channelWeightedScore float64) demand {
	market := sku.TargetMarket
	chanName := sku.PrimaryChannel
	category := sku.Category
	if category == "" {
		category = "Unknown"
	}

	riskFloor := e.Settings.Value("global_risk_floor", 0.6)
	riskSlope := e.Settings.Value("global_risk_slope", 0.25)
	elasticity := e.Settings.Value("price_elasticity_abs", 1.5)

	marketingLift := e.Resolve(market, chanName, category, FieldMarketingLift, 1.0)
	adoptionRate := e.Resolve(market, chanName, category, FieldAdoptionRate, 1.0)
	competitorIdx := e.Resolve(market, chanName, category, FieldCompetitorIdx, 1.0)

	riskFactor := math.Max(riskFloor, 1.0-riskSlope*(riskScore-1.0))
	scoreMult := math.Max(0.6, channelWeightedScore/5.0)
	ramp := e.rampFactor(sku.RampMonth)

	// No per-SKU marketing-support index exists yet; the base index is 1.0.
	marketingFactor := math.Max(0.85, math.Min(1.15, 1.0*marketingLift))
	adoptionFactor := adoptionRate

	compWeight := e.Settings.Value("competitive_weight", 0.2)
	priceWarWeight := e.Settings.Value("price_war_weight", 0.2)
	linPenalty := (compWeight*competitorIdx + priceWarWeight*competitorIdx) * (riskScore / 5.0)
	penaltyCap := e.Settings.Value("risk_penalty_cap", 0.4)
	competitorFactor := math.Max(1.0-math.Min(penaltyCap, linPenalty), 0.6)

	priceEffIndex := 1.0 * (1.0 + e.Settings.Value("global_price_adjustment_pct", 0.0))

	var baseUnits float64
	if channel != nil {
		baseUnits = channel.BaseUnitsMonth
	}

	commonMult := baseUnits * scoreMult * riskFactor *
		marketingFactor * adoptionFactor * competitorFactor * ramp

	units := func(s scenarioParams) float64 {
		priceEffect := math.Pow(1.0/(priceEffIndex*(1.0+s.PriceDelta)), elasticity)
		return commonMult * priceEffect * s.MarketingMult * s.AdoptionMult * s.CompetitorMult
	}

	return demand{
		RiskFactor: riskFactor,
		UnitsBase:  units(e.scenario("base")),
		UnitsBest:  units(e.scenario("best")),
		UnitsWorst: units(e.scenario("worst")),
	}
}
