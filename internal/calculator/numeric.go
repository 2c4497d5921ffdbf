package calculator

import "math"

// TradingDaysPerYear is the annualization basis for volatility.
const TradingDaysPerYear = 252

var annualization = math.Sqrt(TradingDaysPerYear)

func undefined() float64 { return math.NaN() }

// IsDefined reports whether v is a usable value: not NaN and not infinite.
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// undefinedColumn allocates n NaN cells.
func undefinedColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = undefined()
	}
	return col
}

// mean returns the arithmetic mean; NaN inputs propagate.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return undefined()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd returns the n-1 standard deviation, NaN when fewer than two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return undefined()
	}
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
