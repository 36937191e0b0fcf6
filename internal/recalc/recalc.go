// Package recalc owns the orchestration around the calculation engine: it
// assembles immutable configuration snapshots from the stores, fans the
// engine out over the SKU list, and persists the resulting scorecards with
// replace-on-success semantics.
package recalc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sku_scorecard/internal/engine"
	"sku_scorecard/internal/mq"
	"sku_scorecard/internal/store"
)

// ErrAlreadyRunning is returned when another bulk run holds the lock.
var ErrAlreadyRunning = errors.New("a recalculation run is already in progress")

// recalcWorkers bounds the fan-out. The engine itself is pure and safe to
// run concurrently; the bound is for the Postgres connection pool.
const recalcWorkers = 4

type Service struct {
	settings   *store.SettingStore
	markets    *store.MarketStore
	channels   *store.ChannelStore
	categories *store.CategoryStore
	skus       *store.SkuStore
	scorecards *store.ScorecardStore

	// Optional side wiring; nil is fine for tests and degraded startup.
	memory  *store.MemoryStore
	metrics *mq.MetricsPublisher
}

func New(
	settings *store.SettingStore,
	markets *store.MarketStore,
	channels *store.ChannelStore,
	categories *store.CategoryStore,
	skus *store.SkuStore,
	scorecards *store.ScorecardStore,
	memory *store.MemoryStore,
	metrics *mq.MetricsPublisher,
) *Service {
	return &Service{
		settings:   settings,
		markets:    markets,
		channels:   channels,
		categories: categories,
		skus:       skus,
		scorecards: scorecards,
		memory:     memory,
		metrics:    metrics,
	}
}

// Snapshot loads the configuration tables into one immutable engine.
func (s *Service) Snapshot(ctx context.Context) (*engine.Engine, error) {
	settings, err := s.settings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot settings: %w", err)
	}
	markets, err := s.markets.Map(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot markets: %w", err)
	}
	channels, err := s.channels.Map(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot channels: %w", err)
	}
	categories, err := s.categories.Map(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot category overrides: %w", err)
	}
	return engine.New(settings, markets, channels, categories), nil
}

// RunStats summarizes one bulk recalculation.
type RunStats struct {
	RunID           string  `json:"run_id"`
	Skus            int     `json:"skus"`
	Wave1           int     `json:"wave_1"`
	Failed          int     `json:"failed"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// RecalculateAll recomputes every SKU against a fresh snapshot. Each
// scorecard is swapped in atomically per SKU; a SKU whose write fails keeps
// its previous scorecard and is counted in Failed.
func (s *Service) RecalculateAll(ctx context.Context) (*RunStats, error) {
	runID := uuid.New().String()

	if s.memory != nil {
		ok, err := s.memory.TryLockRecalc(ctx, runID)
		if err != nil {
			// Redis being down shouldn't block planning work.
			log.Printf("[recalc] WARN lock unavailable, proceeding unlocked: %v", err)
		} else if !ok {
			return nil, ErrAlreadyRunning
		} else {
			defer s.memory.UnlockRecalc(ctx)
		}
	}

	start := time.Now()

	eng, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	skus, err := s.skus.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skus: %w", err)
	}

	stats := RunStats{RunID: runID, Skus: len(skus)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan engine.SkuRecord)

	for i := 0; i < recalcWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sku := range jobs {
				card := eng.Calculate(sku)
				if err := s.persist(ctx, card); err != nil {
					log.Printf("[recalc] WARN sku %s kept stale scorecard: %v", sku.SkuID, err)
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					continue
				}
				if card.SelectForWave1 {
					mu.Lock()
					stats.Wave1++
					mu.Unlock()
				}
			}
		}()
	}

	for _, sku := range skus {
		jobs <- sku
	}
	close(jobs)
	wg.Wait()

	stats.DurationSeconds = time.Since(start).Seconds()

	if s.metrics != nil {
		if err := s.metrics.Publish(runID, stats.Skus, stats.Wave1, time.Since(start)); err != nil {
			log.Printf("[recalc] WARN metrics publish failed: %v", err)
		}
	}

	return &stats, nil
}

// RecalculateOne refreshes a single SKU after an edit, against a fresh
// snapshot.
func (s *Service) RecalculateOne(ctx context.Context, sku engine.SkuRecord) (*engine.Scorecard, error) {
	eng, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	card := eng.Calculate(sku)
	if err := s.persist(ctx, card); err != nil {
		return nil, err
	}
	return &card, nil
}

// persist writes the scorecard to Postgres and refreshes the redis copy.
// The cache is best-effort; the database row is the source of truth.
func (s *Service) persist(ctx context.Context, card engine.Scorecard) error {
	if err := s.scorecards.Upsert(ctx, card); err != nil {
		return err
	}
	if s.memory != nil {
		if err := s.memory.SaveScorecard(ctx, card); err != nil {
			log.Printf("[recalc] WARN cache refresh failed for %s: %v", card.SkuID, err)
		}
	}
	return nil
}
