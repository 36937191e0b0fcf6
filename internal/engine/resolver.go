package engine

// Override field names. These are the names used by category-level override
// rows and by the global settings fallback.
const (
	FieldAdoptionRate  = "adoption_rate"
	FieldMarketingLift = "marketing_lift"
	FieldCompetitorIdx = "competitor_idx"
)

// channelAttrFor translates an override field name to the channel-level
// attribute that backs it. Easy to get subtly wrong, so it lives in one
// table rather than being scattered across call sites.
var channelAttrFor = map[string]string{
	FieldAdoptionRate:  "retail_adoption_rate",
	FieldMarketingLift: "marketing_lift",
	FieldCompetitorIdx: "competitor_activity_idx",
}

// override returns the category-level value for field, or nil when the row
// does not override it.
func (c MarketCategoryConfig) override(field string) *float64 {
	switch field {
	case FieldAdoptionRate:
		return c.AdoptionRateOverride
	case FieldMarketingLift:
		return c.MarketingLiftOverride
	case FieldCompetitorIdx:
		return c.CompetitorIdxOverride
	}
	return nil
}

// attr returns the channel-level attribute by its translated name. The
// second return is false for names outside the translation table, which
// sends the resolver on to the global tier.
func (c MarketChannelConfig) attr(name string) (float64, bool) {
	switch name {
	case "retail_adoption_rate":
		return c.RetailAdoptionRate, true
	case "marketing_lift":
		return c.MarketingLift, true
	case "competitor_activity_idx":
		return c.CompetitorActivityIdx, true
	}
	return 0, false
}

// Resolve walks the 3-tier cascade for one field:
//
//  1. category override for (market, channel, category), if set
//  2. channel-level value for (market, channel), via the translation table
//  3. global setting under the original field name, else def
//
// Absence at any tier falls through to the next; the last tier always
// answers, so Resolve can never fail on incomplete configuration.
func (e *Engine) Resolve(market, channel, category, field string, def float64) float64 {
	if cat, ok := e.Categories[CategoryKey{Market: market, Channel: channel, Category: category}]; ok {
		if v := cat.override(field); v != nil {
			return *v
		}
	}

	if ch, ok := e.Channels[ChannelKey{Market: market, Channel: channel}]; ok {
		if v, ok := ch.attr(channelAttrFor[field]); ok {
			return v
		}
	}

	return e.Settings.Value(field, def)
}
