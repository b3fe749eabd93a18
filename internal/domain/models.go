package domain

import "time"

// SaleRecord is one observed sale event aggregated to daily granularity.
type SaleRecord struct {
	Channel         string `json:"channel"`
	Date            string `json:"date"`
	SKU             string `json:"sku"`
	ChannelID       string `json:"channel_id"`
	Quantity        int    `json:"quantity"`
	WarehouseID     string `json:"warehouse_id"`
	FulfillmentType string `json:"fulfillment_type"`
	CentralSKU      string `json:"central_sku"`
	StyleID         string `json:"style_id"`
	Size            string `json:"size"`
}

// WarehouseStockRecord is the current on-hand quantity for a
// (channel, warehouse, SKU) triple.
type WarehouseStockRecord struct {
	Channel     string `json:"channel"`
	WarehouseID string `json:"warehouse_id"`
	SKU         string `json:"sku"`
	ChannelID   string `json:"channel_id"`
	Quantity    int    `json:"quantity"`
}

// CentralStockRecord is the current on-hand quantity for a central SKU, the
// shared pool backing replenishment across all channels and warehouses.
type CentralStockRecord struct {
	CentralSKU string `json:"central_sku"`
	Quantity   int    `json:"quantity"`
}

// CatalogRemark is the per-style lifecycle status. At most one remark applies
// per style; on duplicate style IDs the last one in input order wins.
type CatalogRemark struct {
	StyleID  string `json:"style_id"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Dataset is one complete input snapshot. Planning only ever runs against a
// fully loaded snapshot; partial input sets are never processed.
type Dataset struct {
	Sales        []SaleRecord
	FCStock      []WarehouseStockRecord
	CentralStock []CentralStockRecord
	Remarks      []CatalogRemark
	LoadedAt     time.Time
}

// Action is the per-row replenishment decision.
type Action string

const (
	ActionShip   Action = "SHIP"
	ActionRecall Action = "RECALL"
	ActionNone   Action = "NONE"
)

// PlanRow is one replenishment/recall decision for a
// (channel, warehouse, SKU) combination.
//
// Exactly one of ShipmentQty/RecallQty is non-zero when Action is not NONE.
// AllocatedQty is always zero when emitted by a generator; the global
// allocation pass is the only writer and never sets it above ShipmentQty.
type PlanRow struct {
	ID             string  `json:"id"`
	Channel        Channel `json:"channel"`
	SourceChannel  Channel `json:"source_channel,omitempty"`
	StyleID        string  `json:"style_id"`
	SKU            string  `json:"sku"`
	CentralSKU     string  `json:"central_sku"`
	WarehouseID    string  `json:"warehouse_id"`
	Sales30d       int     `json:"sales_30d"`
	RunRate        float64 `json:"run_rate"`
	WarehouseStock int     `json:"warehouse_stock"`
	StockCover     float64 `json:"stock_cover"`
	ShipmentQty    int     `json:"shipment_qty"`
	AllocatedQty   int     `json:"allocated_qty"`
	RecallQty      int     `json:"recall_qty"`
	Action         Action  `json:"action"`
	Remarks        string  `json:"remarks"`
}

// IsSeller reports whether the row came from the direct-fulfillment plan.
func (r PlanRow) IsSeller() bool {
	return r.Channel.IsSeller()
}

// PlanFilter narrows the allocated plan list for presentation.
type PlanFilter struct {
	Channel    string `json:"channel"`
	SellerOnly bool   `json:"seller_only"`
}

// Match reports whether the row passes the filter.
func (f PlanFilter) Match(r PlanRow) bool {
	if f.SellerOnly && !r.IsSeller() {
		return false
	}
	if f.Channel != "" && string(r.Channel) != f.Channel {
		return false
	}
	return true
}

// WarehouseSummary is the per-warehouse totals projection.
type WarehouseSummary struct {
	WarehouseID  string  `json:"warehouse_id"`
	TotalStock   int     `json:"total_stock"`
	TotalSales   int     `json:"total_sales"`
	RunRate      float64 `json:"run_rate"`
	ShipmentQty  int     `json:"shipment_qty"`
	AllocatedQty int     `json:"allocated_qty"`
	RecallQty    int     `json:"recall_qty"`
}

// TopItem is one entry of the top-N ranking, grouped either by SKU or by
// style ID.
type TopItem struct {
	Key      string  `json:"key"`
	Sales30d int     `json:"sales_30d"`
	RunRate  float64 `json:"run_rate"`
}
