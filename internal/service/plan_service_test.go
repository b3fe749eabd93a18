package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anvaya/replen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	dataset *domain.Dataset
	err     error
	calls   int
}

func (s *stubLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.dataset, nil
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Sales: []domain.SaleRecord{
			{Channel: "Amazon IN", SKU: "SKU_A", Quantity: 90, WarehouseID: "BLR8", CentralSKU: "UNI_A", StyleID: "STYLE_A"},
			{Channel: "Amazon IN", SKU: "SKU_B", Quantity: 60, WarehouseID: "SELF_WH", CentralSKU: "UNI_B", StyleID: "STYLE_B"},
		},
		FCStock: []domain.WarehouseStockRecord{
			{Channel: "Amazon IN", WarehouseID: "BLR8", SKU: "SKU_A", Quantity: 10},
		},
		CentralStock: []domain.CentralStockRecord{
			{CentralSKU: "UNI_A", Quantity: 1000},
			{CentralSKU: "UNI_B", Quantity: 1000},
		},
		LoadedAt: time.Now(),
	}
}

func TestPlanService_ReadsRequireRefresh(t *testing.T) {
	svc := NewPlanService(&stubLoader{dataset: testDataset()}, nil)

	_, err := svc.Rows(context.Background(), domain.PlanFilter{})
	assert.True(t, errors.Is(err, ErrNotLoaded))

	_, err = svc.Current()
	assert.True(t, errors.Is(err, ErrNotLoaded))
}

func TestPlanService_RefreshAndFilter(t *testing.T) {
	svc := NewPlanService(&stubLoader{dataset: testDataset()}, nil)

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.RunID)
	require.Len(t, snap.Rows, 2)

	all, err := svc.Rows(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	amazon, err := svc.Rows(context.Background(), domain.PlanFilter{Channel: "Amazon IN"})
	require.NoError(t, err)
	require.Len(t, amazon, 1)
	assert.Equal(t, "SKU_A", amazon[0].SKU)

	seller, err := svc.Rows(context.Background(), domain.PlanFilter{SellerOnly: true})
	require.NoError(t, err)
	require.Len(t, seller, 1)
	assert.True(t, seller[0].IsSeller())
	assert.Equal(t, "SKU_B", seller[0].SKU)
}

func TestPlanService_RefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	loader := &stubLoader{dataset: testDataset()}
	svc := NewPlanService(loader, nil)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	loader.err = errors.New("source sales30d: fetch failed")
	_, err = svc.Refresh(context.Background())
	require.Error(t, err)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, first.RunID, current.RunID)
}

func TestPlanService_EachRefreshGetsNewRunID(t *testing.T) {
	svc := NewPlanService(&stubLoader{dataset: testDataset()}, nil)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestPlanService_WarehouseSummary(t *testing.T) {
	svc := NewPlanService(&stubLoader{dataset: testDataset()}, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	summary, err := svc.WarehouseSummary(context.Background(), domain.PlanFilter{Channel: "Amazon IN"})
	require.NoError(t, err)
	// one warehouse plus the grand total
	require.Len(t, summary, 2)
	assert.Equal(t, "BLR8", summary[0].WarehouseID)
}

func TestPlanService_TopItems(t *testing.T) {
	svc := NewPlanService(&stubLoader{dataset: testDataset()}, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	bySKU, byStyle, err := svc.TopItems(context.Background(), domain.PlanFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, bySKU)
	require.NotEmpty(t, byStyle)
	assert.Equal(t, "SKU_A", bySKU[0].Key)
	assert.Equal(t, "STYLE_A", byStyle[0].Key)
}
