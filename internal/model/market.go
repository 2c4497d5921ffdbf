package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for one symbol over one period.
// Bars are ordered by strictly increasing Time.
type PriceSeries struct {
	Symbol    string
	Period    Period
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// PriceField selects which price of a bar a stage reads.
type PriceField string

const (
	FieldOpen  PriceField = "Open"
	FieldHigh  PriceField = "High"
	FieldLow   PriceField = "Low"
	FieldClose PriceField = "Close"
)

// Valid reports whether f names a known price field.
func (f PriceField) Valid() bool {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose:
		return true
	}
	return false
}

// Value returns the selected price of b. Unknown fields yield 0; callers check Valid first.
func (f PriceField) Value(b OHLCV) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldClose:
		return b.Close
	}
	return 0
}

// Period is a lookback range understood by the data source, e.g. "1y".
type Period string

const (
	Period1Mo     Period = "1mo"
	Period3Mo     Period = "3mo"
	Period6Mo     Period = "6mo"
	Period1Y      Period = "1y"
	Period2Y      Period = "2y"
	Period5Y      Period = "5y"
	Period10Y     Period = "10y"
	PeriodYTD     Period = "ytd"
	PeriodMax     Period = "max"
	DefaultPeriod        = Period1Y
)

// Periods lists every supported period in selector order.
var Periods = []Period{Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax}

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported period %q", s)
}

// ApproxBars estimates how many daily bars a period covers; 0 means unbounded.
func (p Period) ApproxBars(now time.Time) int {
	switch p {
	case Period1Mo:
		return 22
	case Period3Mo:
		return 63
	case Period6Mo:
		return 126
	case Period1Y:
		return 252
	case Period2Y:
		return 504
	case Period5Y:
		return 1260
	case Period10Y:
		return 2520
	case PeriodYTD:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		days := int(now.Sub(start).Hours() / 24)
		return days * 5 / 7
	}
	return 0
}
