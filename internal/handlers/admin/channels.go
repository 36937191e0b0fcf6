package admin

import (
	"encoding/json"
	"net/http"

	"sku_scorecard/internal/engine"
	"sku_scorecard/internal/store"
)

// Channel names like "Rx/Clinic" contain a slash, so channels ride in the
// body and query string rather than the URL path.
type channelPayload struct {
	Channel string `json:"channel"`

	CommissionPct       *float64 `json:"commission_pct"`
	FulfillmentPct      *float64 `json:"fulfillment_pct"`
	CodPct              *float64 `json:"cod_pct"`
	ReturnsAllowancePct *float64 `json:"returns_allowance_pct"`
	ListingFeesPct      *float64 `json:"listing_fees_pct"`
	TradeTermsPct       *float64 `json:"trade_terms_pct"`
	RebatesPct          *float64 `json:"rebates_pct"`
	PromoAccrualPct     *float64 `json:"promo_accrual_pct"`

	RetailAdoptionRate    *float64 `json:"retail_adoption_rate"`
	MarketingLift         *float64 `json:"marketing_lift"`
	BaseUnitsMonth        *float64 `json:"base_units_month"`
	ChannelWeight         *float64 `json:"channel_weight"`
	CompetitorActivityIdx *float64 `json:"competitor_activity_idx"`
}

func (p channelPayload) apply(c *engine.MarketChannelConfig) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.CommissionPct, p.CommissionPct)
	set(&c.FulfillmentPct, p.FulfillmentPct)
	set(&c.CodPct, p.CodPct)
	set(&c.ReturnsAllowancePct, p.ReturnsAllowancePct)
	set(&c.ListingFeesPct, p.ListingFeesPct)
	set(&c.TradeTermsPct, p.TradeTermsPct)
	set(&c.RebatesPct, p.RebatesPct)
	set(&c.PromoAccrualPct, p.PromoAccrualPct)
	set(&c.RetailAdoptionRate, p.RetailAdoptionRate)
	set(&c.MarketingLift, p.MarketingLift)
	set(&c.BaseUnitsMonth, p.BaseUnitsMonth)
	set(&c.ChannelWeight, p.ChannelWeight)
	set(&c.CompetitorActivityIdx, p.CompetitorActivityIdx)
}

func (h *ConfigHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	market := r.PathValue("market")

	rows, err := h.channels.ListByMarket(r.Context(), market)
	if err != nil {
		http.Error(w, "Failed to load channels", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(rows)
}

func (h *ConfigHandler) UpsertChannel(w http.ResponseWriter, r *http.Request) {
	market := r.PathValue("market")

	var req channelPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Channel == "" {
		http.Error(w, "channel is required", http.StatusBadRequest)
		return
	}

	parent, err := h.markets.Get(r.Context(), market)
	if err != nil {
		http.Error(w, "Failed to load market", http.StatusInternalServerError)
		return
	}
	if parent == nil {
		http.Error(w, "Market not found", http.StatusNotFound)
		return
	}

	row, err := h.channels.Get(r.Context(), market, req.Channel)
	if err != nil {
		http.Error(w, "Failed to load channel", http.StatusInternalServerError)
		return
	}
	if row == nil {
		// New rows start at neutral multipliers so a partial payload still
		// yields a usable channel.
		row = &store.MarketChannelRow{
			MarketID: market,
			Channel:  req.Channel,
			MarketChannelConfig: engine.MarketChannelConfig{
				RetailAdoptionRate: 1.0,
				MarketingLift:      1.0,
				ChannelWeight:      1.0,
			},
		}
	}

	req.apply(&row.MarketChannelConfig)
	if err := h.channels.Upsert(r.Context(), *row); err != nil {
		http.Error(w, "Failed to save channel", http.StatusInternalServerError)
		return
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(row)
}
