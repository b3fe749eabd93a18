package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anvaya/replen/internal/config"
	"github.com/anvaya/replen/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	planRowsKeyPrefix = "replen:plan:rows"
	planScanBatchSize = 100
)

// PlanCache caches filtered views of an allocated plan snapshot. Keys carry
// the snapshot's run ID, so a refresh naturally misses old entries and
// InvalidateAll only exists to reclaim space eagerly.
type PlanCache interface {
	GetRows(ctx context.Context, runID string, filter domain.PlanFilter) ([]domain.PlanRow, bool, error)
	SetRows(ctx context.Context, runID string, filter domain.PlanFilter, rows []domain.PlanRow) error
	InvalidateAll(ctx context.Context) error
}

type redisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPlanCache struct{}

// NewPlanCache returns a redis-backed cache when enabled, otherwise a noop.
func NewPlanCache(cfg config.CacheConfig) (PlanCache, error) {
	if !cfg.Enabled {
		return &noopPlanCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPlanCache{client: client, ttl: ttl}, nil
}

// NewNoopPlanCache returns a cache that never hits.
func NewNoopPlanCache() PlanCache {
	return &noopPlanCache{}
}

func (c *redisPlanCache) GetRows(ctx context.Context, runID string, filter domain.PlanFilter) ([]domain.PlanRow, bool, error) {
	key := buildPlanRowsKey(runID, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.PlanRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode plan rows cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisPlanCache) SetRows(ctx context.Context, runID string, filter domain.PlanFilter, rows []domain.PlanRow) error {
	key := buildPlanRowsKey(runID, filter)
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode plan rows cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPlanCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, planRowsKeyPrefix, planScanBatchSize)
}

func (n *noopPlanCache) GetRows(ctx context.Context, runID string, filter domain.PlanFilter) ([]domain.PlanRow, bool, error) {
	return nil, false, nil
}

func (n *noopPlanCache) SetRows(ctx context.Context, runID string, filter domain.PlanFilter, rows []domain.PlanRow) error {
	return nil
}

func (n *noopPlanCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPlanRowsKey(runID string, filter domain.PlanFilter) string {
	raw := fmt.Sprintf("%s|%s|%t", runID, filter.Channel, filter.SellerOnly)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", planRowsKeyPrefix, hex.EncodeToString(sum[:]))
}
