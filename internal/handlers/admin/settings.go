package admin

import (
	"encoding/json"
	"net/http"
)

func (h *ConfigHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(settings)
}

// PutSettings upserts every key in the payload in one go, then rebuilds.
// Unknown keys are stored as-is; the engine ignores keys it never reads.
func (h *ConfigHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req) == 0 {
		http.Error(w, "No settings provided", http.StatusBadRequest)
		return
	}

	for key, value := range req {
		if err := h.settings.Upsert(r.Context(), key, value); err != nil {
			http.Error(w, "Failed to save setting "+key, http.StatusInternalServerError)
			return
		}
	}

	h.rebuild(r)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "updated",
		"updated": len(req),
	})
}
