package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMath/internal/calculator"
	"MarketMath/internal/collector"
	"MarketMath/internal/model"
)

var testNow = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func testCollector() *collector.Collector {
	return collector.NewCollector(&collector.MockFetcher{Data: map[string][]model.OHLCV{
		"AAA":   collector.GenerateMockBars(50, 80, testNow),
		"BBB":   collector.GenerateMockBars(200, 80, testNow),
		"SHORT": collector.GenerateMockBars(10, 5, testNow),
	}}, calculator.DefaultOptions(), nil, zerolog.Nop())
}

func TestFormatAnalysis(t *testing.T) {
	a, err := testCollector().Analyze(context.Background(), "AAA", model.Period3Mo)
	require.NoError(t, err)

	out := FormatAnalysis(a, 5)
	assert.Contains(t, out, "== AAA | 3mo ==")
	assert.Contains(t, out, "Rows: 51 of 80")
	assert.Contains(t, out, "SMA_30")
	assert.Contains(t, out, a.Series.Bars[a.Series.Len()-1].Time.Format("2006-01-02"))
}

func TestFormatAnalysis_Empty(t *testing.T) {
	a, err := testCollector().Analyze(context.Background(), "SHORT", model.Period1Mo)
	require.NoError(t, err)

	out := FormatAnalysis(a, 5)
	assert.Contains(t, out, "No data: 5 bars received")
	assert.NotContains(t, out, "Volatility")
}

func TestFormatComparison(t *testing.T) {
	cmp, err := testCollector().Compare(context.Background(), "AAA", "BBB", model.Period3Mo)
	require.NoError(t, err)

	out := FormatComparison(cmp, 3)
	assert.Contains(t, out, "== AAA vs BBB ==")
	assert.Contains(t, out, "Rebased to 100")
	assert.Equal(t, 1, strings.Count(out, "== AAA | 3mo =="))
	assert.Equal(t, 1, strings.Count(out, "== BBB | 3mo =="))
}

func TestWriteCSV(t *testing.T) {
	a, err := testCollector().Analyze(context.Background(), "AAA", model.Period3Mo)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, a.Series))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, a.Series.Len()+1)
	assert.Equal(t, []string{
		"Date", "Open", "High", "Low", "Close", "Volume",
		"LogReturn", "Velocity", "Acceleration", "Volatility", "SMA_30",
	}, records[0])
	for _, rec := range records[1:] {
		for j, cell := range rec {
			assert.NotEmpty(t, cell, "column %s", records[0][j])
		}
	}
}

func TestWriteCSV_UndefinedCellsAreEmpty(t *testing.T) {
	ds := model.NewDerivedSeries(model.PriceSeries{Bars: collector.GenerateMockBars(10, 3, testNow)})
	ds, err := calculator.LogReturns(ds, model.FieldClose)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][6])
	assert.NotEmpty(t, records[2][6])
}

func TestNum(t *testing.T) {
	assert.Equal(t, "n/a", num(calculator.Summarize(model.NewDerivedSeries(model.PriceSeries{}), 30).SMA, "%.2f"))
	assert.Equal(t, "+1.50", num(1.5, "%+.2f"))
}

func TestTail(t *testing.T) {
	assert.Equal(t, []int{3, 4}, tail(5, 2))
	assert.Equal(t, []int{0, 1}, tail(2, 10))
	assert.Empty(t, tail(0, 3))
}
