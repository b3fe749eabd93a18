package planning

import (
	"testing"

	"github.com/anvaya/replen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByWarehouse(t *testing.T) {
	rows := []domain.PlanRow{
		{WarehouseID: "BLR8", WarehouseStock: 10, Sales30d: 90, RunRate: 3, ShipmentQty: 125, AllocatedQty: 75},
		{WarehouseID: "BLR8", WarehouseStock: 5, Sales30d: 30, RunRate: 1, ShipmentQty: 40, AllocatedQty: 40},
		{WarehouseID: "MALUR", WarehouseStock: 500, Sales30d: 30, RunRate: 1, RecallQty: 440},
	}

	summary := SummarizeByWarehouse(rows)
	require.Len(t, summary, 3)

	blr := summary[0]
	assert.Equal(t, "BLR8", blr.WarehouseID)
	assert.Equal(t, 15, blr.TotalStock)
	assert.Equal(t, 120, blr.TotalSales)
	assert.InDelta(t, 4, blr.RunRate, 1e-9)
	assert.Equal(t, 165, blr.ShipmentQty)
	assert.Equal(t, 115, blr.AllocatedQty)
	assert.Equal(t, 0, blr.RecallQty)

	malur := summary[1]
	assert.Equal(t, "MALUR", malur.WarehouseID)
	assert.Equal(t, 440, malur.RecallQty)

	total := summary[2]
	assert.Equal(t, GrandTotalKey, total.WarehouseID)
	assert.Equal(t, 515, total.TotalStock)
	assert.Equal(t, 150, total.TotalSales)
	assert.InDelta(t, 5, total.RunRate, 1e-9)
	assert.Equal(t, 165, total.ShipmentQty)
	assert.Equal(t, 115, total.AllocatedQty)
	assert.Equal(t, 440, total.RecallQty)
}

func TestSummarizeByWarehouse_Empty(t *testing.T) {
	summary := SummarizeByWarehouse(nil)
	require.Len(t, summary, 1)
	assert.Equal(t, GrandTotalKey, summary[0].WarehouseID)
	assert.Equal(t, 0, summary[0].TotalStock)
}

func TestTopBySKU(t *testing.T) {
	rows := []domain.PlanRow{
		{SKU: "SKU_A", StyleID: "STYLE_1", Sales30d: 90, RunRate: 3},
		{SKU: "SKU_A", StyleID: "STYLE_1", Sales30d: 30, RunRate: 1},
		{SKU: "SKU_B", StyleID: "STYLE_1", Sales30d: 60, RunRate: 2},
		{SKU: "SKU_C", StyleID: "STYLE_2", Sales30d: 150, RunRate: 5},
	}

	top := TopBySKU(rows, 2)
	require.Len(t, top, 2)

	assert.Equal(t, "SKU_C", top[0].Key)
	assert.Equal(t, 150, top[0].Sales30d)
	assert.Equal(t, "SKU_A", top[1].Key)
	assert.Equal(t, 120, top[1].Sales30d)
	assert.InDelta(t, 4, top[1].RunRate, 1e-9)
}

func TestTopByStyle(t *testing.T) {
	rows := []domain.PlanRow{
		{SKU: "SKU_A", StyleID: "STYLE_1", Sales30d: 90, RunRate: 3},
		{SKU: "SKU_B", StyleID: "STYLE_1", Sales30d: 60, RunRate: 2},
		{SKU: "SKU_C", StyleID: "STYLE_2", Sales30d: 100, RunRate: 5},
	}

	top := TopByStyle(rows, 10)
	require.Len(t, top, 2)

	assert.Equal(t, "STYLE_1", top[0].Key)
	assert.Equal(t, 150, top[0].Sales30d)
	assert.Equal(t, "STYLE_2", top[1].Key)
}

func TestTopBySKU_TieBreaksOnKey(t *testing.T) {
	rows := []domain.PlanRow{
		{SKU: "SKU_B", Sales30d: 50},
		{SKU: "SKU_A", Sales30d: 50},
	}

	top := TopBySKU(rows, 10)
	require.Len(t, top, 2)
	assert.Equal(t, "SKU_A", top[0].Key)
	assert.Equal(t, "SKU_B", top[1].Key)
}
