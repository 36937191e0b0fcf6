package admin

import (
	"errors"
	"log"
	"net/http"

	"sku_scorecard/internal/recalc"
	"sku_scorecard/internal/store"
)

// ConfigHandler owns the assumption tables: markets, channel economics,
// category overrides and global settings. Every mutation triggers a full
// recalculation so stored scorecards never drift from the configuration.
type ConfigHandler struct {
	markets    *store.MarketStore
	channels   *store.ChannelStore
	categories *store.CategoryStore
	settings   *store.SettingStore
	recalc     *recalc.Service
}

func NewConfigHandler(
	markets *store.MarketStore,
	channels *store.ChannelStore,
	categories *store.CategoryStore,
	settings *store.SettingStore,
	recalcSvc *recalc.Service,
) *ConfigHandler {
	return &ConfigHandler{
		markets:    markets,
		channels:   channels,
		categories: categories,
		settings:   settings,
		recalc:     recalcSvc,
	}
}

// rebuild refreshes every scorecard after a config change. If a run is
// already in flight the new rows land on the next run, so we log and move on
// instead of failing the mutation.
func (h *ConfigHandler) rebuild(r *http.Request) *recalc.RunStats {
	stats, err := h.recalc.RecalculateAll(r.Context())
	if err != nil {
		if errors.Is(err, recalc.ErrAlreadyRunning) {
			log.Println("⚠️ Recalculation already running, config change will land on the next run")
		} else {
			log.Printf("❌ Recalculation after config change failed: %v", err)
		}
		return nil
	}
	return stats
}
