package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anvaya/replen/internal/cache"
	"github.com/anvaya/replen/internal/domain"
	"github.com/anvaya/replen/internal/ingest"
	"github.com/anvaya/replen/internal/planning"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotLoaded is returned by read methods before the first successful
// refresh.
var ErrNotLoaded = errors.New("no plan snapshot loaded yet")

// Snapshot is one fully allocated planning run.
type Snapshot struct {
	RunID    string           `json:"run_id"`
	LoadedAt time.Time        `json:"loaded_at"`
	Rows     []domain.PlanRow `json:"rows"`
}

// PlanService runs the planning pipeline over a freshly ingested snapshot
// and serves filtered views of the latest result. Each refresh replaces the
// whole snapshot; the planning core itself is synchronous and runs against
// immutable inputs, so the only synchronization needed is the snapshot swap.
type PlanService struct {
	loader ingest.Loader
	cache  cache.PlanCache

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewPlanService creates a plan service. A nil cache degrades to noop.
func NewPlanService(loader ingest.Loader, cacheImpl cache.PlanCache) *PlanService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPlanCache()
	}
	return &PlanService{loader: loader, cache: cacheImpl}
}

// Refresh ingests all four sources and recomputes the allocated plan.
// Fatal ingestion errors surface here unchanged; on failure the previous
// snapshot stays in place.
func (s *PlanService) Refresh(ctx context.Context) (*Snapshot, error) {
	started := time.Now()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	rows := planning.BuildPlan(ds)

	snap := &Snapshot{
		RunID:    uuid.NewString(),
		LoadedAt: ds.LoadedAt,
		Rows:     rows,
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("plan: cache invalidation failed")
	}

	log.Info().
		Str("run_id", snap.RunID).
		Int("rows", len(rows)).
		Dur("took", time.Since(started)).
		Msg("plan refreshed")

	return snap, nil
}

// Current returns the latest snapshot, or ErrNotLoaded.
func (s *PlanService) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNotLoaded
	}
	return s.snapshot, nil
}

// Rows returns the allocated plan rows passing the filter.
func (s *PlanService) Rows(ctx context.Context, filter domain.PlanFilter) ([]domain.PlanRow, error) {
	snap, err := s.Current()
	if err != nil {
		return nil, err
	}

	if rows, ok, err := s.cache.GetRows(ctx, snap.RunID, filter); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("plan: cache get failed")
	}

	rows := make([]domain.PlanRow, 0, len(snap.Rows))
	for _, r := range snap.Rows {
		if filter.Match(r) {
			rows = append(rows, r)
		}
	}

	if err := s.cache.SetRows(ctx, snap.RunID, filter, rows); err != nil {
		log.Warn().Err(err).Msg("plan: cache set failed")
	}

	return rows, nil
}

// WarehouseSummary returns per-warehouse totals over the filtered plan,
// grand-total row included.
func (s *PlanService) WarehouseSummary(ctx context.Context, filter domain.PlanFilter) ([]domain.WarehouseSummary, error) {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return nil, err
	}
	return planning.SummarizeByWarehouse(rows), nil
}

// TopItems returns the top-N rankings by SKU and by style over the filtered
// plan.
func (s *PlanService) TopItems(ctx context.Context, filter domain.PlanFilter) (bySKU, byStyle []domain.TopItem, err error) {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return planning.TopBySKU(rows, planning.TopN), planning.TopByStyle(rows, planning.TopN), nil
}
