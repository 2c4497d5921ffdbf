package calculator

import (
	"math"
	"time"

	"MarketMath/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func seriesOf(closes ...float64) model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.PriceSeries{Symbol: "TEST", Period: model.Period1Y, Bars: bars}
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// wavy returns a strictly positive, non-constant price path.
func wavy(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i)*0.5
	}
	return out
}

func derived(closes ...float64) *model.DerivedSeries {
	return model.NewDerivedSeries(seriesOf(closes...))
}
