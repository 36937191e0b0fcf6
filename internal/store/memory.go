package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sku_scorecard/internal/engine"
)

// MemoryStore keeps hot scorecards in redis so repeated reads skip Postgres,
// and holds the bulk-recalculation lock.
type MemoryStore struct {
	client *redis.Client
}

const scorecardTTL = 1 * time.Hour

// NewMemoryStore creates the redis client for the scorecard cache.
func NewMemoryStore(addr string, password string, db int) *MemoryStore {
	return &MemoryStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping verifies connectivity and credentials.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

// SaveScorecard caches one scorecard with a bounded ttl.
func (m *MemoryStore) SaveScorecard(ctx context.Context, card engine.Scorecard) error {
	data, err := json.Marshal(card)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, "scorecard:"+card.SkuID, data, scorecardTTL).Err()
}

// GetScorecard loads one scorecard from the cache. A miss returns
// (nil, nil) so callers fall through to Postgres.
func (m *MemoryStore) GetScorecard(ctx context.Context, skuID string) (*engine.Scorecard, error) {
	val, err := m.client.Get(ctx, "scorecard:"+skuID).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var card engine.Scorecard
	if err := json.Unmarshal([]byte(val), &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DropScorecard evicts one cached scorecard.
func (m *MemoryStore) DropScorecard(ctx context.Context, skuID string) {
	m.client.Del(ctx, "scorecard:"+skuID)
}

// TryLockRecalc claims the bulk-recalculation lock using SETNX semantics.
// Returns false when another run already holds it.
func (m *MemoryStore) TryLockRecalc(ctx context.Context, runID string) (bool, error) {
	return m.client.SetNX(ctx, "recalc:lock", runID, 5*time.Minute).Result()
}

// UnlockRecalc releases the bulk-recalculation lock.
func (m *MemoryStore) UnlockRecalc(ctx context.Context) {
	m.client.Del(ctx, "recalc:lock")
}
