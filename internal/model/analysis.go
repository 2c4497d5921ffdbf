package model

import "time"

// ColumnStats holds descriptive statistics of one derived column over its defined values.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
	Last  float64
}

// Trend compares the latest price with its moving average.
type Trend string

const (
	TrendAbove   Trend = "ABOVE_SMA"
	TrendBelow   Trend = "BELOW_SMA"
	TrendFlat    Trend = "AT_SMA"
	TrendUnknown Trend = "UNKNOWN"
)

// Summary holds the headline figures of one analysis.
type Summary struct {
	Rows           int
	From           time.Time
	To             time.Time
	FirstClose     float64
	LastClose      float64
	ChangePct      float64
	TotalLogReturn float64
	Velocity       float64
	Acceleration   float64
	Volatility     float64
	SMA            float64
	SMAColumn      string
	High           float64
	Low            float64
	RangePosition  float64 // 0.0 ~ 1.0
	Trend          Trend
}

// Analysis is the output handed to the rendering side for one symbol.
type Analysis struct {
	Symbol    string
	Period    Period
	InputRows int
	Series    *DerivedSeries
	Summary   Summary
	Stats     []ColumnStats
	Duration  time.Duration
}

// Empty reports whether the analysis produced no rows.
func (a *Analysis) Empty() bool { return a == nil || a.Series.Empty() }

// Comparison pairs two analyses with their rebased price series.
type Comparison struct {
	Left         *Analysis
	Right        *Analysis
	LeftRebased  *DerivedSeries
	RightRebased *DerivedSeries
}
