package planning

import (
	"testing"

	"github.com/anvaya/replen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(ch, sku, fc string, qty int) domain.SaleRecord {
	return domain.SaleRecord{
		Channel:     ch,
		Date:        "2026-08-01",
		SKU:         sku,
		Quantity:    qty,
		WarehouseID: fc,
		CentralSKU:  "UNI_" + sku,
		StyleID:     "STYLE_" + sku,
	}
}

func stock(ch, fc, sku string, qty int) domain.WarehouseStockRecord {
	return domain.WarehouseStockRecord{
		Channel:     ch,
		WarehouseID: fc,
		SKU:         sku,
		Quantity:    qty,
	}
}

func findRow(t *testing.T, rows []domain.PlanRow, id string) domain.PlanRow {
	t.Helper()
	for _, r := range rows {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("row %s not found in plan (%d rows)", id, len(rows))
	return domain.PlanRow{}
}

func TestGenerateChannelPlan_ShipWhenCoverBelowTarget(t *testing.T) {
	// 90 sold over 30 days (rate 3) against stock 10: cover 3.33 < 45,
	// need = ceil(45*3 - 10) = 125.
	sales := []domain.SaleRecord{
		sale("Amazon IN", "SKU_A", "BLR8", 50),
		sale("Amazon IN", "SKU_A", "BLR8", 40),
	}
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_A", 10)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, sales, fcStock, nil)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Amazon IN_BLR8_SKU_A", r.ID)
	assert.Equal(t, domain.ActionShip, r.Action)
	assert.Equal(t, 125, r.ShipmentQty)
	assert.Equal(t, 0, r.RecallQty)
	assert.Equal(t, 0, r.AllocatedQty)
	assert.Equal(t, 90, r.Sales30d)
	assert.InDelta(t, 3.0, r.RunRate, 1e-9)
	assert.InDelta(t, 3.3, r.StockCover, 1e-9)
	assert.Equal(t, "STYLE_SKU_A", r.StyleID)
	assert.Equal(t, "UNI_SKU_A", r.CentralSKU)
}

func TestGenerateChannelPlan_RecallWhenCoverAboveMax(t *testing.T) {
	// stock 500 against rate 1: cover 500 > 60, recall = floor(500 - 60) = 440.
	sales := []domain.SaleRecord{sale("Flipkart", "SKU_B", "MALUR", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Flipkart", "MALUR", "SKU_B", 500)}

	rows := GenerateChannelPlan(domain.ChannelFlipkart, sales, fcStock, nil)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, domain.ActionRecall, r.Action)
	assert.Equal(t, 440, r.RecallQty)
	assert.Equal(t, 0, r.ShipmentQty)
}

func TestGenerateChannelPlan_ClosedStyleOverridesCoverRule(t *testing.T) {
	// Cover is comfortably inside [45, 60] but the style is Closed, so the
	// full stock is recalled regardless.
	sales := []domain.SaleRecord{sale("Myntra", "SKU_C", "Bangalore", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Myntra", "Bangalore", "SKU_C", 50)}
	remarks := []domain.CatalogRemark{
		{StyleID: "STYLE_SKU_C", Category: "DRESS", Status: "Closed"},
	}

	rows := GenerateChannelPlan(domain.ChannelMyntra, sales, fcStock, remarks)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, domain.ActionRecall, r.Action)
	assert.Equal(t, 50, r.RecallQty)
	assert.Equal(t, "Style Closed", r.Remarks)
}

func TestGenerateChannelPlan_ClosedMatchIsCaseSensitive(t *testing.T) {
	sales := []domain.SaleRecord{sale("Myntra", "SKU_C", "Bangalore", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Myntra", "Bangalore", "SKU_C", 50)}
	remarks := []domain.CatalogRemark{
		{StyleID: "STYLE_SKU_C", Status: "closed"},
	}

	rows := GenerateChannelPlan(domain.ChannelMyntra, sales, fcStock, remarks)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActionNone, rows[0].Action)
}

func TestGenerateChannelPlan_DuplicateRemarkLastWins(t *testing.T) {
	sales := []domain.SaleRecord{sale("Myntra", "SKU_C", "Bangalore", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Myntra", "Bangalore", "SKU_C", 50)}
	remarks := []domain.CatalogRemark{
		{StyleID: "STYLE_SKU_C", Status: "Closed"},
		{StyleID: "STYLE_SKU_C", Status: "Active"},
	}

	rows := GenerateChannelPlan(domain.ChannelMyntra, sales, fcStock, remarks)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActionNone, rows[0].Action)
}

func TestGenerateChannelPlan_StockWithoutSalesIsRecalled(t *testing.T) {
	// No sales: rate 0, cover hits the 999 sentinel, everything above
	// 60 days of cover (i.e. all of it) comes back.
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_D", 20)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, nil, fcStock, nil)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, domain.ActionRecall, r.Action)
	assert.Equal(t, 20, r.RecallQty)
	assert.InDelta(t, 999, r.StockCover, 1e-9)
	assert.Equal(t, UnknownMarker, r.StyleID)
	assert.Equal(t, UnknownMarker, r.CentralSKU)
}

func TestGenerateChannelPlan_SalesWithoutStockShips(t *testing.T) {
	// The warehouse is known to the channel through another SKU's stock
	// row; this SKU has sales there but no recorded stock.
	sales := []domain.SaleRecord{sale("Amazon IN", "SKU_E", "BLR8", 60)}
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_OTHER", 5)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, sales, fcStock, nil)
	r := findRow(t, rows, "Amazon IN_BLR8_SKU_E")

	assert.Equal(t, domain.ActionShip, r.Action)
	// rate 2, need = ceil(45*2 - 0) = 90
	assert.Equal(t, 90, r.ShipmentQty)
}

func TestGenerateChannelPlan_ZeroQuantityShipDowngradesToNone(t *testing.T) {
	// Stock record with zero quantity and no sales: cover 0 < 45 selects
	// SHIP, but the need rounds to 0, so the action must not display SHIP.
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_F", 0)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, nil, fcStock, nil)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, domain.ActionNone, r.Action)
	assert.Equal(t, 0, r.ShipmentQty)
	assert.Equal(t, 0, r.RecallQty)
}

func TestGenerateChannelPlan_ExcludesSalesAtUnknownWarehouses(t *testing.T) {
	// SELF_WH holds no stock for this channel, so its sales belong to the
	// seller plan, not here.
	sales := []domain.SaleRecord{
		sale("Amazon IN", "SKU_A", "BLR8", 30),
		sale("Amazon IN", "SKU_A", "SELF_WH", 150),
	}
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_A", 10)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, sales, fcStock, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 30, rows[0].Sales30d)
}

func TestGenerateChannelPlan_IgnoresOtherChannels(t *testing.T) {
	sales := []domain.SaleRecord{sale("Flipkart", "SKU_A", "MALUR", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Flipkart", "MALUR", "SKU_A", 10)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, sales, fcStock, nil)
	assert.Empty(t, rows)
}

func TestGenerateChannelPlan_ResolvesCatalogFromAnySaleOfSKU(t *testing.T) {
	// Stock at BLR8 with no matching sales there, but the SKU sold on
	// another channel: style and central SKU resolve through that row.
	sales := []domain.SaleRecord{sale("Flipkart", "SKU_G", "MALUR", 30)}
	fcStock := []domain.WarehouseStockRecord{stock("Amazon IN", "BLR8", "SKU_G", 10)}

	rows := GenerateChannelPlan(domain.ChannelAmazon, sales, fcStock, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "STYLE_SKU_G", rows[0].StyleID)
	assert.Equal(t, "UNI_SKU_G", rows[0].CentralSKU)
}

func TestGenerateChannelPlan_StockQuantitiesSumPerKey(t *testing.T) {
	fcStock := []domain.WarehouseStockRecord{
		stock("Amazon IN", "BLR8", "SKU_H", 30),
		stock("Amazon IN", "BLR8", "SKU_H", 20),
	}

	rows := GenerateChannelPlan(domain.ChannelAmazon, nil, fcStock, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 50, rows[0].WarehouseStock)
}
