package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"sku_scorecard/internal/auth"
	"sku_scorecard/internal/config"
	"sku_scorecard/internal/handlers"
	"sku_scorecard/internal/migrations"
	"sku_scorecard/internal/mq"
	"sku_scorecard/internal/recalc"
	"sku_scorecard/internal/store"
)

func main() {
	// ---------------------------------------------------------
	// 1. CONFIGURATION
	// ---------------------------------------------------------
	cfg := config.Load()

	if err := auth.InitJWTKey(cfg.JWTSecret); err != nil {
		log.Fatalf("❌ Failed to init JWT key: %v", err)
	}

	// ---------------------------------------------------------
	// 2. DATABASE CONNECTION & MIGRATIONS
	// ---------------------------------------------------------
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to open DB driver: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("❌ Failed to ping Database: %v", err)
	}
	fmt.Println("✅ Connected to Scorecard Database")

	if err := migrations.Up(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	fmt.Println("✅ Migrations up to date")

	// ---------------------------------------------------------
	// 3. REDIS CACHE (Optional)
	// ---------------------------------------------------------
	var memory *store.MemoryStore
	if cfg.RedisAddr != "" {
		memory = store.NewMemoryStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := memory.Ping(context.Background()); err != nil {
			fmt.Printf("⚠️  Redis unreachable at %s, running without cache: %v\n", cfg.RedisAddr, err)
			memory = nil
		} else {
			fmt.Println("✅ Connected to Redis cache")
		}
	} else {
		fmt.Println("⚠️  REDIS_ADDR not set, running without cache")
	}

	// ---------------------------------------------------------
	// 4. METRICS PUBLISHER (zmq)
	// ---------------------------------------------------------
	metrics, err := mq.NewMetricsPublisher(cfg.MetricsBind)
	if err != nil {
		fmt.Printf("⚠️  Metrics publisher unavailable: %v\n", err)
		metrics = nil
	} else {
		defer metrics.Close()
		fmt.Printf("✅ Publishing run metrics on %s\n", cfg.MetricsBind)
	}

	// ---------------------------------------------------------
	// 5. INITIALIZE STORES & RECALC SERVICE
	// ---------------------------------------------------------
	analystStore := store.NewAnalystStore(db)
	settingStore := store.NewSettingStore(db)
	marketStore := store.NewMarketStore(db)
	channelStore := store.NewChannelStore(db)
	categoryStore := store.NewCategoryStore(db)
	skuStore := store.NewSkuStore(db)
	scorecardStore := store.NewScorecardStore(db)

	recalcSvc := recalc.New(settingStore, marketStore, channelStore, categoryStore, skuStore, scorecardStore, memory, metrics)

	// ---------------------------------------------------------
	// 6. SETUP ROUTER & START SERVER
	// ---------------------------------------------------------
	mux := handlers.NewRouter(
		analystStore,
		marketStore,
		channelStore,
		categoryStore,
		settingStore,
		skuStore,
		scorecardStore,
		memory,
		recalcSvc,
	)

	fmt.Printf("🚀 Scorecard Service running on http://localhost:%s\n", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("❌ Server crashed: %v", err)
	}
}
