package handlers

import (
	"net/http"

	"sku_scorecard/internal/auth"
	"sku_scorecard/internal/handlers/admin"
	"sku_scorecard/internal/handlers/planner"
	"sku_scorecard/internal/recalc"
	"sku_scorecard/internal/store"
)

func NewRouter(
	analystStore *store.AnalystStore,
	marketStore *store.MarketStore,
	channelStore *store.ChannelStore,
	categoryStore *store.CategoryStore,
	settingStore *store.SettingStore,
	skuStore *store.SkuStore,
	scorecardStore *store.ScorecardStore,
	memory *store.MemoryStore,
	recalcSvc *recalc.Service,
) *http.ServeMux {

	mux := http.NewServeMux()

	// --- PUBLIC ROUTES (No Auth Needed) ---
	analystAuth := planner.NewAuthHandler(analystStore)
	mux.HandleFunc("POST /api/analyst/register", analystAuth.Register)
	mux.HandleFunc("POST /api/analyst/login", analystAuth.Login)
	mux.HandleFunc("POST /api/analyst/refresh", analystAuth.Refresh)

	// --- PROTECTED ROUTES (Require Login) ---
	protected := func(handlerFunc http.HandlerFunc) http.HandlerFunc {
		return auth.Middleware(http.HandlerFunc(handlerFunc)).ServeHTTP
	}

	config := admin.NewConfigHandler(marketStore, channelStore, categoryStore, settingStore, recalcSvc)
	mux.HandleFunc("GET /api/markets", protected(config.ListMarkets))
	mux.HandleFunc("POST /api/markets", protected(config.CreateMarket))
	mux.HandleFunc("PUT /api/markets/{market}", protected(config.UpdateMarket))
	mux.HandleFunc("DELETE /api/markets/{market}", protected(config.DeleteMarket))
	mux.HandleFunc("GET /api/markets/{market}/channels", protected(config.ListChannels))
	mux.HandleFunc("PUT /api/markets/{market}/channels", protected(config.UpsertChannel))
	mux.HandleFunc("GET /api/markets/{market}/categories", protected(config.ListCategories))
	mux.HandleFunc("PUT /api/markets/{market}/categories", protected(config.UpsertCategory))
	mux.HandleFunc("DELETE /api/markets/{market}/categories", protected(config.DeleteCategory))
	mux.HandleFunc("GET /api/settings", protected(config.GetSettings))
	mux.HandleFunc("PUT /api/settings", protected(config.PutSettings))

	skus := planner.NewSkuHandler(skuStore, scorecardStore, memory, recalcSvc)
	mux.HandleFunc("GET /api/skus", protected(skus.ListSkus))
	mux.HandleFunc("POST /api/skus", protected(skus.UpsertSku))
	mux.HandleFunc("GET /api/skus/{id}", protected(skus.GetSku))
	mux.HandleFunc("PUT /api/skus/{id}", protected(skus.UpdateSku))
	mux.HandleFunc("DELETE /api/skus/{id}", protected(skus.DeleteSku))
	mux.HandleFunc("GET /api/skus/{id}/scorecard", protected(skus.GetScorecard))
	mux.HandleFunc("GET /api/scorecards", protected(skus.ListScorecards))

	upload := planner.NewUploadHandler(settingStore, marketStore, channelStore, skuStore, recalcSvc)
	mux.HandleFunc("POST /api/upload/headers", protected(upload.Headers))
	mux.HandleFunc("POST /api/upload", protected(upload.Upload))

	rerun := planner.NewRecalcHandler(recalcSvc)
	mux.HandleFunc("POST /api/recalculate", protected(rerun.Recalculate))

	return mux
}
