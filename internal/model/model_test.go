package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() PriceSeries {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return PriceSeries{
		Symbol: "AAPL",
		Period: Period1Mo,
		Bars: []OHLCV{
			{Time: t0, Open: 1, High: 2, Low: 0.5, Close: 1.5},
			{Time: t0.AddDate(0, 0, 1), Open: 2, High: 3, Low: 1.5, Close: 2.5},
			{Time: t0.AddDate(0, 0, 2), Open: 3, High: 4, Low: 2.5, Close: 3.5},
		},
	}
}

func TestNewDerivedSeries_CopiesBars(t *testing.T) {
	s := testSeries()
	d := NewDerivedSeries(s)
	d.Bars[0].Close = 99

	assert.Equal(t, 1.5, s.Bars[0].Close)
	assert.Equal(t, 3, d.Len())
	assert.False(t, d.Empty())
}

func TestWithColumn_LeavesReceiverUntouched(t *testing.T) {
	d := NewDerivedSeries(testSeries())
	d2 := d.WithColumn("x", []float64{1, 2, 3})
	d3 := d2.WithColumn("x", []float64{4, 5, 6}).WithColumn("y", []float64{7, 8, 9})

	assert.False(t, d.Has("x"))
	assert.Equal(t, []string{"x"}, d2.Columns())
	assert.Equal(t, []string{"x", "y"}, d3.Columns())
	assert.Equal(t, 2.0, d2.At("x", 1))
	assert.Equal(t, 5.0, d3.At("x", 1))
}

func TestColumn_ReturnsCopy(t *testing.T) {
	d := NewDerivedSeries(testSeries()).WithColumn("x", []float64{1, 2, 3})
	col, ok := d.Column("x")
	require.True(t, ok)
	col[0] = 42

	assert.Equal(t, 1.0, d.At("x", 0))
	_, ok = d.Column("missing")
	assert.False(t, ok)
	assert.True(t, math.IsNaN(d.At("missing", 0)))
	assert.True(t, math.IsNaN(d.At("x", 7)))
}

func TestSelectRows(t *testing.T) {
	d := NewDerivedSeries(testSeries()).WithColumn("x", []float64{1, 2, 3})
	out := d.SelectRows([]bool{false, true, true})

	require.Equal(t, 2, out.Len())
	assert.Equal(t, 2.5, out.Bars[0].Close)
	col, _ := out.Column("x")
	assert.Equal(t, []float64{2, 3}, col)
	assert.Equal(t, "AAPL", out.Symbol)
	assert.Equal(t, 3, d.Len())
}

func TestNilDerivedSeries(t *testing.T) {
	var d *DerivedSeries
	assert.True(t, d.Empty())
	assert.Nil(t, d.Columns())
	assert.False(t, d.Has("x"))
	assert.True(t, math.IsNaN(d.At("x", 0)))
}

func TestPrices(t *testing.T) {
	d := NewDerivedSeries(testSeries())
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, d.Prices(FieldClose))
	assert.Equal(t, []float64{2, 3, 4}, d.Prices(FieldHigh))
	assert.Len(t, d.Times(), 3)
}

func TestPriceField(t *testing.T) {
	bar := OHLCV{Open: 1, High: 2, Low: 3, Close: 4}
	tests := []struct {
		field PriceField
		want  float64
	}{
		{FieldOpen, 1},
		{FieldHigh, 2},
		{FieldLow, 3},
		{FieldClose, 4},
	}
	for _, tt := range tests {
		assert.True(t, tt.field.Valid())
		assert.Equal(t, tt.want, tt.field.Value(bar))
	}
	assert.False(t, PriceField("Adj Close").Valid())
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePeriod("3d")
	assert.Error(t, err)
}

func TestApproxBars(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 252, Period1Y.ApproxBars(now))
	assert.Equal(t, 0, PeriodMax.ApproxBars(now))
	assert.Equal(t, 59*5/7, PeriodYTD.ApproxBars(now))
}

func TestAnalysisEmpty(t *testing.T) {
	var a *Analysis
	assert.True(t, a.Empty())
	assert.True(t, (&Analysis{}).Empty())
	assert.False(t, (&Analysis{Series: NewDerivedSeries(testSeries())}).Empty())
}
