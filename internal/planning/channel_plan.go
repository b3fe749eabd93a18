package planning

import (
	"fmt"
	"math"
	"sort"

	"github.com/anvaya/replen/internal/domain"
)

// skuFCKey joins a SKU to the warehouse holding (or selling) it.
type skuFCKey struct {
	SKU string
	FC  string
}

// GenerateChannelPlan builds the replenishment/recall plan for one
// marketplace channel.
//
// The valid-warehouse set for the channel is derived from its own stock
// rows; sales into warehouses outside that set are excluded here and picked
// up by the seller plan instead. Every (SKU, warehouse) combination present
// in either the stock or the sales index produces a row. AllocatedQty is
// always emitted as zero; only the global allocation pass sets it.
func GenerateChannelPlan(
	ch domain.Channel,
	sales []domain.SaleRecord,
	fcStock []domain.WarehouseStockRecord,
	remarks []domain.CatalogRemark,
) []domain.PlanRow {
	validFCs := make(map[string]bool)
	stockIdx := make(map[skuFCKey]int)
	for _, s := range fcStock {
		if s.Channel != string(ch) {
			continue
		}
		validFCs[s.WarehouseID] = true
		key := skuFCKey{SKU: s.SKU, FC: s.WarehouseID}
		stockIdx[key] += s.Quantity
	}

	salesIdx := make(map[skuFCKey][]domain.SaleRecord)
	for _, s := range sales {
		if s.Channel != string(ch) || !validFCs[s.WarehouseID] {
			continue
		}
		key := skuFCKey{SKU: s.SKU, FC: s.WarehouseID}
		salesIdx[key] = append(salesIdx[key], s)
	}

	resolver := newCatalogResolver(sales)
	statusByStyle := remarkIndex(remarks)

	keys := unionKeys(stockIdx, salesIdx)

	rows := make([]domain.PlanRow, 0, len(keys))
	for _, key := range keys {
		matched := salesIdx[key]
		currentStock := stockIdx[key]

		info := resolver.Resolve(key.SKU, matched)

		totalSales := 0
		for _, s := range matched {
			totalSales += s.Quantity
		}
		rate := RunRate(totalSales)
		cover := StockCoverDays(currentStock, rate)

		var (
			shipQty    int
			recallQty  int
			action     = domain.ActionNone
			remarkText string
		)

		if statusByStyle[info.StyleID] == "Closed" {
			// Full exit overrides the cover rule entirely.
			action = domain.ActionRecall
			recallQty = currentStock
			remarkText = "Style Closed"
		} else if cover < TargetStockCover {
			action = domain.ActionShip
			shipQty = int(math.Max(0, math.Ceil(TargetStockCover*rate-float64(currentStock))))
		} else if cover > MaxStockCover {
			action = domain.ActionRecall
			recallQty = int(math.Max(0, math.Floor(float64(currentStock)-MaxStockCover*rate)))
		}

		// A zero-quantity SHIP or RECALL would display a misleading label.
		if action == domain.ActionShip && shipQty == 0 {
			action = domain.ActionNone
		}
		if action == domain.ActionRecall && recallQty == 0 {
			action = domain.ActionNone
		}

		rows = append(rows, domain.PlanRow{
			ID:             fmt.Sprintf("%s_%s_%s", ch, key.FC, key.SKU),
			Channel:        ch,
			StyleID:        info.StyleID,
			SKU:            key.SKU,
			CentralSKU:     info.CentralSKU,
			WarehouseID:    key.FC,
			Sales30d:       totalSales,
			RunRate:        RoundTo(rate, 2),
			WarehouseStock: currentStock,
			StockCover:     RoundTo(cover, 1),
			ShipmentQty:    shipQty,
			AllocatedQty:   0,
			RecallQty:      recallQty,
			Action:         action,
			Remarks:        remarkText,
		})
	}

	return rows
}

// unionKeys returns the sorted union of keys in the stock and sales indexes.
// Sorting gives deterministic row order independent of map iteration.
func unionKeys(stockIdx map[skuFCKey]int, salesIdx map[skuFCKey][]domain.SaleRecord) []skuFCKey {
	seen := make(map[skuFCKey]bool, len(stockIdx)+len(salesIdx))
	keys := make([]skuFCKey, 0, len(stockIdx)+len(salesIdx))
	for k := range stockIdx {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range salesIdx {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SKU != keys[j].SKU {
			return keys[i].SKU < keys[j].SKU
		}
		return keys[i].FC < keys[j].FC
	})
	return keys
}
