package engine

import "testing"

func cascadeEngine() *Engine {
	settings := GlobalSettings{
		FieldAdoptionRate:  0.9,
		FieldMarketingLift: 0.95,
		FieldCompetitorIdx: 0.5,
	}
	channels := map[ChannelKey]MarketChannelConfig{
		{Market: "India", Channel: "MT"}: {
			RetailAdoptionRate:    0.7,
			MarketingLift:         1.05,
			CompetitorActivityIdx: 0.3,
		},
	}
	categories := map[CategoryKey]MarketCategoryConfig{
		{Market: "India", Channel: "MT", Category: "Snacks"}: {
			AdoptionRateOverride: floatPtr(0.42),
		},
	}
	return New(settings, nil, channels, categories)
}

func TestResolve_CategoryOverrideWins(t *testing.T) {
	e := cascadeEngine()
	nearlyEqual(t, "adoption_rate",
		e.Resolve("India", "MT", "Snacks", FieldAdoptionRate, 1.0), 0.42)
}

func TestResolve_NilOverrideFallsToChannel(t *testing.T) {
	e := cascadeEngine()
	// The category row exists but does not override marketing_lift.
	nearlyEqual(t, "marketing_lift",
		e.Resolve("India", "MT", "Snacks", FieldMarketingLift, 1.0), 1.05)
}

func TestResolve_ChannelValueBeatsGlobal(t *testing.T) {
	e := cascadeEngine()
	// No category row at all for this category.
	nearlyEqual(t, "adoption_rate",
		e.Resolve("India", "MT", "Beverages", FieldAdoptionRate, 1.0), 0.7)
	nearlyEqual(t, "competitor_idx",
		e.Resolve("India", "MT", "Beverages", FieldCompetitorIdx, 1.0), 0.3)
}

func TestResolve_GlobalSettingBeatsDefault(t *testing.T) {
	e := cascadeEngine()
	// Unknown market/channel: only the global tier can answer.
	nearlyEqual(t, "adoption_rate",
		e.Resolve("UAE", "GT", "Snacks", FieldAdoptionRate, 1.0), 0.9)
}

func TestResolve_DefaultWhenNothingConfigured(t *testing.T) {
	e := New(GlobalSettings{}, nil, nil, nil)
	nearlyEqual(t, "adoption_rate",
		e.Resolve("UAE", "GT", "Snacks", FieldAdoptionRate, 1.0), 1.0)
	nearlyEqual(t, "competitor_idx",
		e.Resolve("", "", "", FieldCompetitorIdx, 0.25), 0.25)
}

func TestResolve_TranslationTable(t *testing.T) {
	want := map[string]string{
		FieldAdoptionRate:  "retail_adoption_rate",
		FieldMarketingLift: "marketing_lift",
		FieldCompetitorIdx: "competitor_activity_idx",
	}
	if len(channelAttrFor) != len(want) {
		t.Fatalf("translation table has %d entries, want %d", len(channelAttrFor), len(want))
	}
	for field, attr := range want {
		if got := channelAttrFor[field]; got != attr {
			t.Fatalf("channelAttrFor[%q] = %q, want %q", field, got, attr)
		}
	}
}

func TestResolve_UnknownFieldSkipsChannelTier(t *testing.T) {
	e := cascadeEngine()
	// A field outside the translation table cannot be answered by the
	// channel tier even when the channel row exists.
	nearlyEqual(t, "unknown field",
		e.Resolve("India", "MT", "Snacks", "listing_breadth_index", 0.2), 0.2)
}
