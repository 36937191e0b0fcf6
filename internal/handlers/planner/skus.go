package planner

import (
	"encoding/json"
	"log"
	"net/http"

	"sku_scorecard/internal/engine"
	"sku_scorecard/internal/recalc"
	"sku_scorecard/internal/store"
)

// SkuHandler serves the shortlist itself. Saving a SKU immediately rescores
// it, so a GET on its scorecard right after a PUT reflects the edit.
type SkuHandler struct {
	skus       *store.SkuStore
	scorecards *store.ScorecardStore
	memory     *store.MemoryStore
	recalc     *recalc.Service
}

func NewSkuHandler(
	skus *store.SkuStore,
	scorecards *store.ScorecardStore,
	memory *store.MemoryStore,
	recalcSvc *recalc.Service,
) *SkuHandler {
	return &SkuHandler{
		skus:       skus,
		scorecards: scorecards,
		memory:     memory,
		recalc:     recalcSvc,
	}
}

func (h *SkuHandler) ListSkus(w http.ResponseWriter, r *http.Request) {
	skus, err := h.skus.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load SKUs", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(skus)
}

func (h *SkuHandler) GetSku(w http.ResponseWriter, r *http.Request) {
	sku, err := h.skus.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to load SKU", http.StatusInternalServerError)
		return
	}
	if sku == nil {
		http.Error(w, "SKU not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(sku)
}

func (h *SkuHandler) UpsertSku(w http.ResponseWriter, r *http.Request) {
	var sku engine.SkuRecord
	if err := json.NewDecoder(r.Body).Decode(&sku); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if sku.SkuID == "" || sku.SkuName == "" {
		http.Error(w, "sku_id and sku_name are required", http.StatusBadRequest)
		return
	}

	if err := h.skus.Upsert(r.Context(), sku); err != nil {
		http.Error(w, "Failed to save SKU", http.StatusInternalServerError)
		return
	}

	card, err := h.recalc.RecalculateOne(r.Context(), sku)
	if err != nil {
		// The SKU row is saved; the scorecard catches up on the next run.
		log.Printf("⚠️ Rescore failed for %s: %v", sku.SkuID, err)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"sku": sku})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sku":       sku,
		"scorecard": card,
	})
}

// UpdateSku rewrites an existing SKU under the id in the URL, then rescores
// it. The body's sku_id, if present, must agree with the path.
func (h *SkuHandler) UpdateSku(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var sku engine.SkuRecord
	if err := json.NewDecoder(r.Body).Decode(&sku); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if sku.SkuID == "" {
		sku.SkuID = id
	}
	if sku.SkuID != id {
		http.Error(w, "sku_id does not match URL", http.StatusBadRequest)
		return
	}
	if sku.SkuName == "" {
		http.Error(w, "sku_name is required", http.StatusBadRequest)
		return
	}

	existing, err := h.skus.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load SKU", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "SKU not found", http.StatusNotFound)
		return
	}

	if err := h.skus.Upsert(r.Context(), sku); err != nil {
		http.Error(w, "Failed to save SKU", http.StatusInternalServerError)
		return
	}

	card, err := h.recalc.RecalculateOne(r.Context(), sku)
	if err != nil {
		log.Printf("⚠️ Rescore failed for %s: %v", sku.SkuID, err)
		json.NewEncoder(w).Encode(map[string]interface{}{"sku": sku})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"sku":       sku,
		"scorecard": card,
	})
}

func (h *SkuHandler) DeleteSku(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.skus.Delete(r.Context(), id); err != nil {
		http.Error(w, "SKU not found", http.StatusNotFound)
		return
	}
	if h.memory != nil {
		h.memory.DropScorecard(r.Context(), id)
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "sku_id": id})
}
