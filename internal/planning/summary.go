package planning

import (
	"sort"

	"github.com/anvaya/replen/internal/domain"
)

// GrandTotalKey labels the grand-total row appended by SummarizeByWarehouse.
const GrandTotalKey = "GRAND TOTAL"

// SummarizeByWarehouse groups an already-allocated, already-filtered plan
// list into per-warehouse totals, sorted by warehouse ID, with a grand-total
// row appended last. Read-only projection; nothing feeds back into the plan.
func SummarizeByWarehouse(rows []domain.PlanRow) []domain.WarehouseSummary {
	byFC := make(map[string]*domain.WarehouseSummary)
	for _, r := range rows {
		s, ok := byFC[r.WarehouseID]
		if !ok {
			s = &domain.WarehouseSummary{WarehouseID: r.WarehouseID}
			byFC[r.WarehouseID] = s
		}
		s.TotalStock += r.WarehouseStock
		s.TotalSales += r.Sales30d
		s.RunRate += r.RunRate
		s.ShipmentQty += r.ShipmentQty
		s.AllocatedQty += r.AllocatedQty
		s.RecallQty += r.RecallQty
	}

	out := make([]domain.WarehouseSummary, 0, len(byFC)+1)
	for _, s := range byFC {
		s.RunRate = RoundTo(s.RunRate, 2)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WarehouseID < out[j].WarehouseID
	})

	total := domain.WarehouseSummary{WarehouseID: GrandTotalKey}
	for _, s := range out {
		total.TotalStock += s.TotalStock
		total.TotalSales += s.TotalSales
		total.RunRate += s.RunRate
		total.ShipmentQty += s.ShipmentQty
		total.AllocatedQty += s.AllocatedQty
		total.RecallQty += s.RecallQty
	}
	total.RunRate = RoundTo(total.RunRate, 2)

	return append(out, total)
}

// TopBySKU ranks SKUs by total 30-day sales quantity, descending, keeping
// the top n.
func TopBySKU(rows []domain.PlanRow, n int) []domain.TopItem {
	return topBy(rows, n, func(r domain.PlanRow) string { return r.SKU })
}

// TopByStyle ranks style IDs by total 30-day sales quantity, descending,
// keeping the top n.
func TopByStyle(rows []domain.PlanRow, n int) []domain.TopItem {
	return topBy(rows, n, func(r domain.PlanRow) string { return r.StyleID })
}

func topBy(rows []domain.PlanRow, n int, keyOf func(domain.PlanRow) string) []domain.TopItem {
	byKey := make(map[string]*domain.TopItem)
	for _, r := range rows {
		key := keyOf(r)
		item, ok := byKey[key]
		if !ok {
			item = &domain.TopItem{Key: key}
			byKey[key] = item
		}
		item.Sales30d += r.Sales30d
		item.RunRate += r.RunRate
	}

	items := make([]domain.TopItem, 0, len(byKey))
	for _, item := range byKey {
		item.RunRate = RoundTo(item.RunRate, 2)
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Sales30d != items[j].Sales30d {
			return items[i].Sales30d > items[j].Sales30d
		}
		return items[i].Key < items[j].Key
	})

	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
