package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMath/internal/model"
)

func TestDescribe_SkipsUndefined(t *testing.T) {
	ds := derived(1, 2, 3, 4).WithColumn("x", []float64{math.NaN(), 2, 4, 6})

	stats := Describe(ds)
	require.Len(t, stats, 1)
	st := stats[0]
	assert.Equal(t, "x", st.Name)
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, 4.0, st.Mean, 1e-12)
	assert.InDelta(t, 2.0, st.Std, 1e-12)
	assert.Equal(t, 2.0, st.Min)
	assert.Equal(t, 6.0, st.Max)
	assert.Equal(t, 6.0, st.Last)
}

func TestDescribe_AllUndefined(t *testing.T) {
	ds := derived(1, 2).WithColumn("x", []float64{math.NaN(), math.NaN()})

	st := Describe(ds)[0]
	assert.Equal(t, 0, st.Count)
	assert.True(t, math.IsNaN(st.Mean))
	assert.True(t, math.IsNaN(st.Min))
	assert.True(t, math.IsNaN(st.Max))
}

func TestSummarize(t *testing.T) {
	out, err := Process(seriesOf(wavy(60)...))
	require.NoError(t, err)

	sum := Summarize(out, DefaultSMAWindow)
	last := out.Len() - 1
	assert.Equal(t, out.Len(), sum.Rows)
	assert.Equal(t, out.Bars[0].Time, sum.From)
	assert.Equal(t, out.Bars[last].Time, sum.To)
	assert.Equal(t, out.At(model.ColVolatility, last), sum.Volatility)
	assert.Equal(t, out.At("SMA_30", last), sum.SMA)
	assert.InDelta(t, (sum.LastClose-sum.FirstClose)/sum.FirstClose*100, sum.ChangePct, 1e-12)
	assert.InDelta(t, math.Log(sum.LastClose/sum.FirstClose), sum.TotalLogReturn, 1e-12)
	assert.NotEqual(t, model.TrendUnknown, sum.Trend)
	assert.GreaterOrEqual(t, sum.RangePosition, 0.0)
	assert.LessOrEqual(t, sum.RangePosition, 1.0)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(derived(), DefaultSMAWindow)
	assert.Equal(t, 0, sum.Rows)
	assert.Equal(t, model.TrendUnknown, sum.Trend)
	assert.True(t, math.IsNaN(sum.LastClose))
	assert.Equal(t, "SMA_30", sum.SMAColumn)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		price, sma float64
		want       model.Trend
	}{
		{110, 100, model.TrendAbove},
		{90, 100, model.TrendBelow},
		{100, 100, model.TrendFlat},
		{100, math.NaN(), model.TrendUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trend(tt.price, tt.sma), "price %.1f sma %.1f", tt.price, tt.sma)
	}
}

func TestPeriodRange(t *testing.T) {
	high, low := PeriodRange(seriesOf(10, 30, 20).Bars)
	assert.InDelta(t, 30*1.01, high, 1e-12)
	assert.InDelta(t, 10*0.99, low, 1e-12)

	high, low = PeriodRange(nil)
	assert.True(t, math.IsNaN(high))
	assert.True(t, math.IsNaN(low))
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		price, high, low float64
		want             float64
	}{
		{150, 200, 100, 0.5},
		{250, 200, 100, 1},
		{50, 200, 100, 0},
		{100, 100, 100, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RangePosition(tt.price, tt.high, tt.low), 1e-12)
	}
	assert.True(t, math.IsNaN(RangePosition(1, 0, 10)))
}

func TestRebase(t *testing.T) {
	ds, err := Rebase(derived(50, 75, 25), model.FieldClose, RebaseBase)
	require.NoError(t, err)
	col, _ := ds.Column(model.ColRebased)
	assert.Equal(t, []float64{100, 150, 50}, col)

	ds, err = Rebase(derived(0, 10), model.FieldClose, RebaseBase)
	require.NoError(t, err)
	col, _ = ds.Column(model.ColRebased)
	assert.True(t, math.IsNaN(col[0]))
	assert.True(t, math.IsNaN(col[1]))
}
