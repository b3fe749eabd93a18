package planning

import "github.com/anvaya/replen/internal/domain"

const (
	// TargetStockCover is the cover level (days) replenishment ships up to.
	TargetStockCover = 45
	// MaxStockCover is the cover level (days) above which stock is recalled.
	MaxStockCover = 60
	// CentralAllocationCap is the fraction of central stock that a single
	// planning cycle may draw down.
	CentralAllocationCap = 0.40
	// RunRatePeriodDays is the trailing sales window behind the run rate.
	RunRatePeriodDays = 30
	// InfiniteCoverSentinel stands in for infinite cover when stock exists
	// but the run rate is zero, keeping comparisons and display integral.
	InfiniteCoverSentinel = 999
	// TopN is the size of the top-seller rankings.
	TopN = 10

	// UnknownMarker is the fallback style/central-SKU value when no sales
	// row can resolve the join.
	UnknownMarker = "UNKNOWN"

	defaultFallbackFC = "DEFAULT_FC"
)

// fallbackFCs is the static per-channel warehouse priority list for
// direct-fulfillment replenishment. The first entry is the target.
var fallbackFCs = map[domain.Channel][]string{
	domain.ChannelAmazon:   {"BLR8", "HYD3", "BOM5", "CJB1", "DEL5"},
	domain.ChannelFlipkart: {"MALUR", "KOLKATA", "SANPKA", "HYDERABAD", "BHIWANDI"},
	domain.ChannelMyntra:   {"Bangalore", "Mumbai", "Bilaspur"},
}

// FallbackFC returns the primary direct-fulfillment target warehouse for a
// channel.
func FallbackFC(ch domain.Channel) string {
	if list, ok := fallbackFCs[ch]; ok && len(list) > 0 {
		return list[0]
	}
	return defaultFallbackFC
}
