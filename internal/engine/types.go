package engine

// GlobalSettings is the named-constant layer of the configuration cascade.
// Every key the engine reads has a hardcoded default, so an empty map is a
// perfectly valid snapshot.
type GlobalSettings map[string]float64

// Value looks up a setting, falling back to def when the key is absent.
func (s GlobalSettings) Value(key string, def float64) float64 {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}

// ChannelKey identifies a market/channel configuration row.
// We key the maps on structs instead of joined strings so a market name
// containing the separator can never collide with another key.
type ChannelKey struct {
	Market  string
	Channel string
}

// CategoryKey identifies a market/channel/category override row.
type CategoryKey struct {
	Market   string
	Channel  string
	Category string
}

// MarketConfig holds market-level economics.
type MarketConfig struct {
	MarketName       string  `json:"market_name"`
	Currency         string  `json:"currency"`
	ImportFreightPct float64 `json:"import_freight_pct"`
	DutiesTaxesPct   float64 `json:"duties_taxes_pct"`
	PriceMultiplier  float64 `json:"price_multiplier"`
	DocDistributor   float64 `json:"doc_distributor"` // days of coverage, distributor
	DocRetail        float64 `json:"doc_retail"`      // days of coverage, retail
}

// MarketChannelConfig holds the granular CTS matrix plus the demand drivers
// for one market/channel pair.
type MarketChannelConfig struct {
	CommissionPct       float64 `json:"commission_pct"`
	FulfillmentPct      float64 `json:"fulfillment_pct"`
	CodPct              float64 `json:"cod_pct"`
	ReturnsAllowancePct float64 `json:"returns_allowance_pct"`
	ListingFeesPct      float64 `json:"listing_fees_pct"`
	TradeTermsPct       float64 `json:"trade_terms_pct"`
	RebatesPct          float64 `json:"rebates_pct"`
	PromoAccrualPct     float64 `json:"promo_accrual_pct"`

	RetailAdoptionRate    float64 `json:"retail_adoption_rate"`
	MarketingLift         float64 `json:"marketing_lift"`
	BaseUnitsMonth        float64 `json:"base_units_month"`
	ChannelWeight         float64 `json:"channel_weight"`
	CompetitorActivityIdx float64 `json:"competitor_activity_idx"`
}

// CTSTotal sums the eight cost-to-serve percentages.
func (c MarketChannelConfig) CTSTotal() float64 {
	return c.CommissionPct + c.FulfillmentPct + c.CodPct +
		c.ReturnsAllowancePct + c.ListingFeesPct +
		c.TradeTermsPct + c.RebatesPct + c.PromoAccrualPct
}

// MarketCategoryConfig carries the optional category-level overrides.
// A nil field means "defer to the channel-level value".
type MarketCategoryConfig struct {
	AdoptionRateOverride  *float64 `json:"adoption_rate_override"`
	MarketingLiftOverride *float64 `json:"marketing_lift_override"`
	CompetitorIdxOverride *float64 `json:"competitor_idx_override"`
}

// SkuRecord is one product under evaluation. Rows are created by the
// ingestion side; the engine only ever reads them.
//
// Ratings are 1-5 integers; a rating left blank on upload lands here as 0
// and is scored as 0, not as the neutral middle. The four gate fields are
// pointers because "not answered" and "explicitly no" mean different things
// to the recommendation step.
type SkuRecord struct {
	SkuID          string `json:"sku_id"`
	SkuName        string `json:"sku_name"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	TargetMarket   string `json:"target_market"`
	PrimaryChannel string `json:"primary_channel"`

	LocalListPrice float64 `json:"local_list_price"`
	LandedCost     float64 `json:"landed_cost"`

	// Layer B: market & channel fit
	ScoreConsumerTrend      int `json:"score_consumer_trend"`
	ScorePointOfDiff        int `json:"score_point_of_diff"`
	ScoreChannelSuitability int `json:"score_channel_suitability"`
	ScoreStrategicRole      int `json:"score_strategic_role"`
	ScoreMarketingLeverage  int `json:"score_marketing_leverage"`

	// Layer C: strategic synergy
	ScorePriceLadder        int `json:"score_price_ladder"`
	ScoreUsageOccasion      int `json:"score_usage_occasion"`
	ScoreChannelDiff        int `json:"score_channel_diff"`
	ScoreStoryCohesion      int `json:"score_story_cohesion"`
	ScoreOperationalSynergy int `json:"score_operational_synergy"`

	// Layer D: risk heatmap
	ScoreRegulatoryDelay int `json:"score_regulatory_delay"`
	ScoreRetailListing   int `json:"score_retail_listing"`
	ScoreCompetitive     int `json:"score_competitive"`
	ScoreSupplyChain     int `json:"score_supply_chain"`
	ScorePriceWar        int `json:"score_price_war"`

	RegulatoryEligible    *bool `json:"regulatory_eligible"`
	RegulatoryProhibition *bool `json:"regulatory_prohibition"`
	IPRiskHigh            *bool `json:"ip_risk_high"`
	SupplyReady           *bool `json:"supply_ready"`

	MOQ             int `json:"moq"`
	LeadTimeDays    int `json:"lead_time_days"`
	ShelfLifeMonths int `json:"shelf_life_months"`
	RampMonth       int `json:"ramp_month"`

	PassPortfolioBalance *bool  `json:"pass_portfolio_balance"`
	SuggestedLaunchWave  string `json:"suggested_launch_wave"`
}

// Recommendation states. Every SKU maps to exactly one.
const (
	RecLaunchNow   = "Launch Now"
	RecPhaseLater  = "Phase Later"
	RecDoNotLaunch = "Do Not Launch"
)

// Scorecard is the full derived snapshot for one SKU. The engine returns a
// fresh value every run; it never patches a previous one.
type Scorecard struct {
	SkuID string `json:"sku_id"`

	GMDollarPerUnit float64 `json:"gm_dollar_per_unit"`
	GMPct           float64 `json:"gm_pct"`

	FitScore             float64 `json:"fit_score"`
	ChannelWeightedScore float64 `json:"channel_weighted_score"`
	SynergyScore         float64 `json:"synergy_score"`
	RiskScore            float64 `json:"risk_score"`
	RiskFactor           float64 `json:"risk_factor"`

	AdjUnitsBase  float64 `json:"adj_units_base"`
	AdjUnitsBest  float64 `json:"adj_units_best"`
	AdjUnitsWorst float64 `json:"adj_units_worst"`

	MonthlyRevenue float64 `json:"monthly_revenue"`
	// MonthlyGMDollar predates the per-scenario fields and always equals
	// MonthlyGMBase. Kept so older spreadsheet exports keep lining up.
	MonthlyGMDollar float64 `json:"monthly_gm_dollar"`
	MonthlyGMBase   float64 `json:"monthly_gm_base"`
	MonthlyGMBest   float64 `json:"monthly_gm_best"`
	MonthlyGMWorst  float64 `json:"monthly_gm_worst"`

	PassRegulatory  bool `json:"pass_regulatory"`
	PassSupplyReady bool `json:"pass_supply_ready"`
	PassGMFloor     bool `json:"pass_gm_floor"`

	Recommendation string `json:"final_recommendation"`
	SelectForWave1 bool   `json:"select_for_wave_1"`
}
