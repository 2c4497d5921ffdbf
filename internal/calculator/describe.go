package calculator

import (
	"math"

	"MarketMath/internal/model"
)

// Describe computes statistics for every derived column, skipping undefined cells.
func Describe(s *model.DerivedSeries) []model.ColumnStats {
	names := s.Columns()
	stats := make([]model.ColumnStats, 0, len(names))
	for _, name := range names {
		col, _ := s.Column(name)
		stats = append(stats, describeColumn(name, col))
	}
	return stats
}

func describeColumn(name string, col []float64) model.ColumnStats {
	st := model.ColumnStats{
		Name: name,
		Mean: undefined(),
		Std:  undefined(),
		Min:  math.Inf(1),
		Max:  math.Inf(-1),
		Last: undefined(),
	}
	values := make([]float64, 0, len(col))
	for _, v := range col {
		if !IsDefined(v) {
			continue
		}
		values = append(values, v)
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		st.Last = v
	}
	st.Count = len(values)
	if st.Count == 0 {
		st.Min, st.Max = undefined(), undefined()
		return st
	}
	st.Mean = mean(values)
	st.Std = sampleStd(values)
	return st
}

// Summarize builds the headline figures of a processed series. smaWindow
// selects which SMA column drives the trend label.
func Summarize(s *model.DerivedSeries, smaWindow int) model.Summary {
	sum := model.Summary{
		Rows:           s.Len(),
		FirstClose:     undefined(),
		LastClose:      undefined(),
		ChangePct:      undefined(),
		TotalLogReturn: undefined(),
		Velocity:       undefined(),
		Acceleration:   undefined(),
		Volatility:     undefined(),
		SMA:            undefined(),
		High:           undefined(),
		Low:            undefined(),
		RangePosition:  undefined(),
		SMAColumn:      SMAColumn(smaWindow),
		Trend:          model.TrendUnknown,
	}
	if s.Empty() {
		return sum
	}

	last := s.Len() - 1
	sum.From = s.Bars[0].Time
	sum.To = s.Bars[last].Time
	sum.FirstClose = s.Bars[0].Close
	sum.LastClose = s.Bars[last].Close
	if positive(sum.FirstClose) {
		sum.ChangePct = (sum.LastClose - sum.FirstClose) / sum.FirstClose * 100
	}
	if positive(sum.FirstClose) && positive(sum.LastClose) {
		sum.TotalLogReturn = math.Log(sum.LastClose / sum.FirstClose)
	}
	sum.Velocity = s.At(model.ColVelocity, last)
	sum.Acceleration = s.At(model.ColAcceleration, last)
	sum.Volatility = s.At(model.ColVolatility, last)
	sum.SMA = s.At(sum.SMAColumn, last)
	sum.High, sum.Low = PeriodRange(s.Bars)
	sum.RangePosition = RangePosition(sum.LastClose, sum.High, sum.Low)
	sum.Trend = trend(sum.LastClose, sum.SMA)
	return sum
}

func trend(price, sma float64) model.Trend {
	switch {
	case !IsDefined(price) || !IsDefined(sma):
		return model.TrendUnknown
	case price > sma:
		return model.TrendAbove
	case price < sma:
		return model.TrendBelow
	default:
		return model.TrendFlat
	}
}
