package planning

import (
	"fmt"
	"math"
	"sort"

	"github.com/anvaya/replen/internal/domain"
)

// channelSKUKey groups direct sales by the marketplace they occurred on.
type channelSKUKey struct {
	Channel string
	SKU     string
}

// GenerateSellerPlan builds the direct-fulfillment replenishment plan.
//
// A sale is direct when its warehouse appears in no stock record at all; the
// exclusion set here is channel-agnostic, unlike the per-channel set used by
// GenerateChannelPlan. That asymmetry matches observed behavior and is kept
// on purpose.
//
// This path is ship-only: there is no tracked on-hand stock, so the need is
// a flat ceil(target cover x rate) with no stock offset and no recall rule.
func GenerateSellerPlan(
	sales []domain.SaleRecord,
	fcStock []domain.WarehouseStockRecord,
	remarks []domain.CatalogRemark,
) []domain.PlanRow {
	validFCs := make(map[string]bool, len(fcStock))
	for _, s := range fcStock {
		validFCs[s.WarehouseID] = true
	}

	grouped := make(map[channelSKUKey][]domain.SaleRecord)
	for _, s := range sales {
		if validFCs[s.WarehouseID] {
			continue
		}
		key := channelSKUKey{Channel: s.Channel, SKU: s.SKU}
		grouped[key] = append(grouped[key], s)
	}

	statusByStyle := remarkIndex(remarks)

	keys := make([]channelSKUKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Channel != keys[j].Channel {
			return keys[i].Channel < keys[j].Channel
		}
		return keys[i].SKU < keys[j].SKU
	})

	var rows []domain.PlanRow
	for _, key := range keys {
		group := grouped[key]
		rep := group[0]

		// No replenishment for discontinued styles.
		if statusByStyle[rep.StyleID] == "Closed" {
			continue
		}

		totalSales := 0
		for _, s := range group {
			totalSales += s.Quantity
		}
		rate := RunRate(totalSales)
		shipQty := int(math.Ceil(TargetStockCover * rate))
		if shipQty <= 0 {
			continue
		}

		sourceChannel := domain.Channel(key.Channel)
		targetFC := FallbackFC(sourceChannel)

		rows = append(rows, domain.PlanRow{
			ID:             fmt.Sprintf("SELLER_%s_%s_%s", key.Channel, targetFC, key.SKU),
			Channel:        domain.ChannelSeller,
			SourceChannel:  sourceChannel,
			StyleID:        rep.StyleID,
			SKU:            key.SKU,
			CentralSKU:     rep.CentralSKU,
			WarehouseID:    targetFC,
			Sales30d:       totalSales,
			RunRate:        RoundTo(rate, 2),
			WarehouseStock: 0,
			StockCover:     0,
			ShipmentQty:    shipQty,
			AllocatedQty:   0,
			RecallQty:      0,
			Action:         domain.ActionShip,
			Remarks:        fmt.Sprintf("Seller Replenishment to %s", key.Channel),
		})
	}

	return rows
}
