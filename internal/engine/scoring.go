package engine

// Each score layer is a weighted sum over five 1-5 ratings. The weights are
// global settings, 0.2 apiece by default, so an untouched settings table
// yields a plain average. A missing rating is already 0 on the SkuRecord and
// stays 0 in the sum.

var fitWeightKeys = [5]string{
	"consumer_trend_weight",
	"point_of_diff_weight",
	"channel_suitability_weight",
	"strategic_role_weight",
	"marketing_leverage_weight",
}

var synergyWeightKeys = [5]string{
	"price_ladder_weight",
	"usage_occasion_weight",
	"channel_diff_weight",
	"story_cohesion_weight",
	"operational_synergy_weight",
}

var riskWeightKeys = [5]string{
	"regulatory_delay_weight",
	"retail_listing_weight",
	"competitive_weight",
	"supply_chain_weight",
	"price_war_weight",
}

func (e *Engine) weightedScore(ratings [5]int, weightKeys [5]string) float64 {
	var total float64
	for i, key := range weightKeys {
		total += float64(ratings[i]) * e.Settings.Value(key, 0.2)
	}
	return total
}

// fitScore is layer B: market & channel fit.
func (e *Engine) fitScore(sku SkuRecord) float64 {
	return e.weightedScore([5]int{
		sku.ScoreConsumerTrend,
		sku.ScorePointOfDiff,
		sku.ScoreChannelSuitability,
		sku.ScoreStrategicRole,
		sku.ScoreMarketingLeverage,
	}, fitWeightKeys)
}

// synergyScore is layer C: strategic synergy.
func (e *Engine) synergyScore(sku SkuRecord) float64 {
	return e.weightedScore([5]int{
		sku.ScorePriceLadder,
		sku.ScoreUsageOccasion,
		sku.ScoreChannelDiff,
		sku.ScoreStoryCohesion,
		sku.ScoreOperationalSynergy,
	}, synergyWeightKeys)
}

// riskScore is layer D: the risk heatmap.
func (e *Engine) riskScore(sku SkuRecord) float64 {
	return e.weightedScore([5]int{
		sku.ScoreRegulatoryDelay,
		sku.ScoreRetailListing,
		sku.ScoreCompetitive,
		sku.ScoreSupplyChain,
		sku.ScorePriceWar,
	}, riskWeightKeys)
}
