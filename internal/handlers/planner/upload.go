package planner

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sku_scorecard/internal/ingest"
	"sku_scorecard/internal/recalc"
	"sku_scorecard/internal/store"
)

const maxUploadBytes = 10 << 20 // 10 MB

// UploadHandler ingests shortlist CSVs. The flow is two-step: the client
// first posts the file to /headers to get the column names, maps them in the
// UI, then posts file + mapping to import.
type UploadHandler struct {
	settings *store.SettingStore
	markets  *store.MarketStore
	channels *store.ChannelStore
	skus     *store.SkuStore
	recalc   *recalc.Service
}

func NewUploadHandler(
	settings *store.SettingStore,
	markets *store.MarketStore,
	channels *store.ChannelStore,
	skus *store.SkuStore,
	recalcSvc *recalc.Service,
) *UploadHandler {
	return &UploadHandler{
		settings: settings,
		markets:  markets,
		channels: channels,
		skus:     skus,
		recalc:   recalcSvc,
	}
}

func (h *UploadHandler) Headers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	headers, err := ingest.ExtractHeaders(file)
	if err != nil {
		http.Error(w, "Failed to read CSV headers", http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string][]string{"headers": headers})
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var mapping map[string]string
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			http.Error(w, "mapping must be a JSON object", http.StatusBadRequest)
			return
		}
	}
	defaultMarket := r.FormValue("default_market")

	// First upload on an empty database still needs markets, channels and
	// settings to score against.
	if err := ingest.SeedDefaults(r.Context(), h.settings, h.markets, h.channels); err != nil {
		http.Error(w, "Failed to seed default configuration", http.StatusInternalServerError)
		return
	}

	skus, err := ingest.ParseSkus(file, mapping, defaultMarket)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(skus) == 0 {
		http.Error(w, "No usable rows in file", http.StatusBadRequest)
		return
	}

	for _, sku := range skus {
		if err := h.skus.Upsert(r.Context(), sku); err != nil {
			http.Error(w, "Failed to save SKU "+sku.SkuID, http.StatusInternalServerError)
			return
		}
	}

	stats, err := h.recalc.RecalculateAll(r.Context())
	if err != nil {
		if errors.Is(err, recalc.ErrAlreadyRunning) {
			log.Println("⚠️ Recalculation already running, imported SKUs score on the next run")
		} else {
			log.Printf("❌ Recalculation after import failed: %v", err)
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"imported": len(skus),
		"run":      stats,
	})
}
