package planning

import "github.com/shopspring/decimal"

// RunRate returns the average daily sales quantity over the trailing
// 30-day window. No rounding is applied here.
func RunRate(totalQty int) float64 {
	return float64(totalQty) / RunRatePeriodDays
}

// StockCoverDays returns the days of cover the given stock provides at the
// given run rate. A zero rate with positive stock yields the sentinel 999
// rather than an actual infinity.
func StockCoverDays(stock int, rate float64) float64 {
	if rate == 0 {
		if stock > 0 {
			return InfiniteCoverSentinel
		}
		return 0
	}
	return float64(stock) / rate
}

// RoundTo rounds half away from zero at the given decimal precision. Used
// only for display-oriented fields; quantities feeding allocation math use
// explicit ceiling/floor.
func RoundTo(v float64, decimals int32) float64 {
	return decimal.NewFromFloat(v).Round(decimals).InexactFloat64()
}
