package admin

import (
	"encoding/json"
	"net/http"

	"sku_scorecard/internal/engine"
)

// marketPayload carries only the fields the caller sent, so PUT can patch a
// market without clobbering the rest of the row.
type marketPayload struct {
	Currency         *string  `json:"currency"`
	ImportFreightPct *float64 `json:"import_freight_pct"`
	DutiesTaxesPct   *float64 `json:"duties_taxes_pct"`
	PriceMultiplier  *float64 `json:"price_multiplier"`
	DocDistributor   *float64 `json:"doc_distributor"`
	DocRetail        *float64 `json:"doc_retail"`
}

func (p marketPayload) apply(m *engine.MarketConfig) {
	if p.Currency != nil {
		m.Currency = *p.Currency
	}
	if p.ImportFreightPct != nil {
		m.ImportFreightPct = *p.ImportFreightPct
	}
	if p.DutiesTaxesPct != nil {
		m.DutiesTaxesPct = *p.DutiesTaxesPct
	}
	if p.PriceMultiplier != nil {
		m.PriceMultiplier = *p.PriceMultiplier
	}
	if p.DocDistributor != nil {
		m.DocDistributor = *p.DocDistributor
	}
	if p.DocRetail != nil {
		m.DocRetail = *p.DocRetail
	}
}

func (h *ConfigHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.markets.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load markets", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(markets)
}

func (h *ConfigHandler) CreateMarket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MarketName string `json:"market_name"`
		marketPayload
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.MarketName == "" {
		http.Error(w, "market_name is required", http.StatusBadRequest)
		return
	}

	existing, err := h.markets.Get(r.Context(), req.MarketName)
	if err != nil {
		http.Error(w, "Failed to check market", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "Market already exists", http.StatusConflict)
		return
	}

	market := engine.MarketConfig{
		MarketName:      req.MarketName,
		Currency:        "USD",
		PriceMultiplier: 1.0,
		DocDistributor:  30,
		DocRetail:       15,
	}
	req.apply(&market)

	if err := h.markets.Create(r.Context(), market); err != nil {
		http.Error(w, "Failed to create market", http.StatusInternalServerError)
		return
	}

	h.rebuild(r)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(market)
}

func (h *ConfigHandler) UpdateMarket(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("market")

	var req marketPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	market, err := h.markets.Get(r.Context(), name)
	if err != nil {
		http.Error(w, "Failed to load market", http.StatusInternalServerError)
		return
	}
	if market == nil {
		http.Error(w, "Market not found", http.StatusNotFound)
		return
	}

	req.apply(market)
	if err := h.markets.Update(r.Context(), *market); err != nil {
		http.Error(w, "Failed to update market", http.StatusInternalServerError)
		return
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(market)
}

func (h *ConfigHandler) DeleteMarket(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("market")

	market, err := h.markets.Get(r.Context(), name)
	if err != nil {
		http.Error(w, "Failed to load market", http.StatusInternalServerError)
		return
	}
	if market == nil {
		http.Error(w, "Market not found", http.StatusNotFound)
		return
	}

	if err := h.markets.Delete(r.Context(), name); err != nil {
		http.Error(w, "Failed to delete market", http.StatusInternalServerError)
		return
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "market": name})
}
