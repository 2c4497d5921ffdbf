package calculator

import (
	"math"

	"MarketMath/internal/model"
)

// PeriodRange returns the highest High and lowest Low across bars.
// Both are NaN when bars is empty.
func PeriodRange(bars []model.OHLCV) (high, low float64) {
	if len(bars) == 0 {
		return undefined(), undefined()
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low
}

// RangePosition returns where price sits within [low, high], clamped to 0..1.
// A flat range yields 0.5.
func RangePosition(price, high, low float64) float64 {
	if !IsDefined(price) || !IsDefined(high) || !IsDefined(low) || high < low {
		return undefined()
	}
	if high == low {
		return 0.5
	}
	return math.Max(0, math.Min(1, (price-low)/(high-low)))
}
