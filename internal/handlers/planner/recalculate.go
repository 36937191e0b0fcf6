package planner

import (
	"encoding/json"
	"errors"
	"net/http"

	"sku_scorecard/internal/recalc"
)

type RecalcHandler struct {
	recalc *recalc.Service
}

func NewRecalcHandler(s *recalc.Service) *RecalcHandler {
	return &RecalcHandler{recalc: s}
}

// Recalculate rescores the whole shortlist on demand. Concurrent requests
// get a 409 instead of a second run.
func (h *RecalcHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	stats, err := h.recalc.RecalculateAll(r.Context())
	if err != nil {
		if errors.Is(err, recalc.ErrAlreadyRunning) {
			http.Error(w, "A recalculation is already running", http.StatusConflict)
			return
		}
		http.Error(w, "Recalculation failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(stats)
}
