package planning

import (
	"fmt"
	"math"
	"sort"

	"github.com/anvaya/replen/internal/domain"
)

// BuildPlan runs every channel generator plus the seller generator over one
// input snapshot, then resolves global scarcity against the capped central
// stock pool.
//
// Only a fixed fraction of each central SKU's stock may be drawn down per
// cycle. When total SHIP demand for a central SKU exceeds that cap, each row
// receives a demand-weighted proportional share, floored so the sum of
// allocations never exceeds the available pool. Proportional rationing is a
// fairness property: no warehouse exhausts shared stock while another with
// equal or higher need gets nothing.
func BuildPlan(ds *domain.Dataset) []domain.PlanRow {
	var rows []domain.PlanRow
	for _, ch := range domain.Marketplaces() {
		rows = append(rows, GenerateChannelPlan(ch, ds.Sales, ds.FCStock, ds.Remarks)...)
	}
	rows = append(rows, GenerateSellerPlan(ds.Sales, ds.FCStock, ds.Remarks)...)

	available := make(map[string]int, len(ds.CentralStock))
	for _, cs := range ds.CentralStock {
		available[cs.CentralSKU] = int(math.Floor(float64(cs.Quantity) * CentralAllocationCap))
	}

	totalDemand := make(map[string]int)
	for _, r := range rows {
		if r.Action == domain.ActionShip {
			totalDemand[r.CentralSKU] += r.ShipmentQty
		}
	}

	for i := range rows {
		r := &rows[i]
		if r.Action != domain.ActionShip {
			r.AllocatedQty = 0
			continue
		}

		avail := available[r.CentralSKU]
		demand := totalDemand[r.CentralSKU]

		switch {
		case demand == 0:
			r.AllocatedQty = 0
		case avail >= demand:
			r.AllocatedQty = r.ShipmentQty
		default:
			share := float64(r.ShipmentQty) / float64(demand)
			r.AllocatedQty = int(math.Floor(share * float64(avail)))
			r.Remarks = appendRemark(r.Remarks, fmt.Sprintf("Capped by Stock (Need: %d)", r.ShipmentQty))
		}

		// Distinguish a true zero allocation from rows never needing anything.
		if r.AllocatedQty == 0 && r.ShipmentQty > 0 {
			r.Remarks = appendRemark(r.Remarks, "Out of Stock")
		}
	}

	// Presentation order only; no consumer may rely on it for correctness.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RunRate > rows[j].RunRate
	})

	return rows
}

func appendRemark(existing, remark string) string {
	if existing == "" {
		return remark
	}
	return existing + " | " + remark
}
