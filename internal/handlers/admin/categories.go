package admin

import (
	"encoding/json"
	"net/http"

	"sku_scorecard/internal/engine"
	"sku_scorecard/internal/store"
)

func (h *ConfigHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	market := r.PathValue("market")
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "channel query parameter is required", http.StatusBadRequest)
		return
	}

	rows, err := h.categories.ListByChannel(r.Context(), market, channel)
	if err != nil {
		http.Error(w, "Failed to load category overrides", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(rows)
}

// UpsertCategory replaces the override row wholesale: a field left null in
// the payload clears that override, dropping resolution back to the channel.
func (h *ConfigHandler) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	market := r.PathValue("market")

	var req struct {
		Channel  string `json:"channel"`
		Category string `json:"category"`
		engine.MarketCategoryConfig
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Channel == "" || req.Category == "" {
		http.Error(w, "channel and category are required", http.StatusBadRequest)
		return
	}

	parent, err := h.channels.Get(r.Context(), market, req.Channel)
	if err != nil {
		http.Error(w, "Failed to load channel", http.StatusInternalServerError)
		return
	}
	if parent == nil {
		http.Error(w, "Channel not found", http.StatusNotFound)
		return
	}

	row := store.MarketCategoryRow{
		MarketID:             market,
		Channel:              req.Channel,
		Category:             req.Category,
		MarketCategoryConfig: req.MarketCategoryConfig,
	}
	if err := h.categories.Upsert(r.Context(), row); err != nil {
		http.Error(w, "Failed to save category override", http.StatusInternalServerError)
		return
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(row)
}

func (h *ConfigHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	market := r.PathValue("market")
	q := r.URL.Query()
	channel := q.Get("channel")
	category := q.Get("category")
	if channel == "" || category == "" {
		http.Error(w, "channel and category query parameters are required", http.StatusBadRequest)
		return
	}

	if err := h.categories.Delete(r.Context(), market, channel, category); err != nil {
		http.Error(w, "Override not found", http.StatusNotFound)
		return
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "category": category})
}
