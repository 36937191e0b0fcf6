package planner

import (
	"encoding/json"
	"log"
	"net/http"
)

// GetScorecard tries the redis cache first and falls back to Postgres,
// re-warming the cache on a miss.
func (h *SkuHandler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if h.memory != nil {
		card, err := h.memory.GetScorecard(r.Context(), id)
		if err != nil {
			log.Printf("⚠️ Cache read failed for %s: %v", id, err)
		} else if card != nil {
			json.NewEncoder(w).Encode(card)
			return
		}
	}

	card, err := h.scorecards.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load scorecard", http.StatusInternalServerError)
		return
	}
	if card == nil {
		http.Error(w, "Scorecard not found", http.StatusNotFound)
		return
	}

	if h.memory != nil {
		if err := h.memory.SaveScorecard(r.Context(), *card); err != nil {
			log.Printf("⚠️ Cache refresh failed for %s: %v", id, err)
		}
	}
	json.NewEncoder(w).Encode(card)
}

func (h *SkuHandler) ListScorecards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.scorecards.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load scorecards", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cards)
}
