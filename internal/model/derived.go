package model

import (
	"math"
	"slices"
	"time"
)

// Derived column names.
const (
	ColLogReturn    = "LogReturn"
	ColVelocity     = "Velocity"
	ColAcceleration = "Acceleration"
	ColVolatility   = "Volatility"
	ColRebased      = "Rebased"
)

// DerivedSeries is a PriceSeries extended with named derived columns.
// Undefined cells hold NaN. Column slices are never written after they are
// attached, so derived series produced from one another may share them.
type DerivedSeries struct {
	Symbol  string
	Period  Period
	Bars    []OHLCV
	names   []string
	columns map[string][]float64
}

// NewDerivedSeries copies the bars of s so that later stages never alias the caller's data.
func NewDerivedSeries(s PriceSeries) *DerivedSeries {
	return &DerivedSeries{
		Symbol:  s.Symbol,
		Period:  s.Period,
		Bars:    slices.Clone(s.Bars),
		columns: map[string][]float64{},
	}
}

// Len returns the number of rows.
func (d *DerivedSeries) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Bars)
}

// Empty reports whether the series has no rows.
func (d *DerivedSeries) Empty() bool { return d.Len() == 0 }

// Columns returns derived column names in the order they were added.
func (d *DerivedSeries) Columns() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.names)
}

// Has reports whether a column exists.
func (d *DerivedSeries) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.columns[name]
	return ok
}

// Column returns a copy of the named column.
func (d *DerivedSeries) Column(name string) ([]float64, bool) {
	if d == nil {
		return nil, false
	}
	col, ok := d.columns[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(col), true
}

// At returns the value of column name at row i, NaN if the column or row is missing.
func (d *DerivedSeries) At(name string, i int) float64 {
	if d == nil {
		return math.NaN()
	}
	col, ok := d.columns[name]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// Times returns the row timestamps.
func (d *DerivedSeries) Times() []time.Time {
	if d == nil {
		return nil
	}
	out := make([]time.Time, len(d.Bars))
	for i, b := range d.Bars {
		out[i] = b.Time
	}
	return out
}

// Prices extracts one price field for every row.
func (d *DerivedSeries) Prices(field PriceField) []float64 {
	if d == nil {
		return nil
	}
	out := make([]float64, len(d.Bars))
	for i, b := range d.Bars {
		out[i] = field.Value(b)
	}
	return out
}

// WithColumn returns a new series sharing d's rows and columns plus col under
// name. col must have one value per row and is owned by the result from here on.
// An existing column of the same name is replaced in the result only.
func (d *DerivedSeries) WithColumn(name string, col []float64) *DerivedSeries {
	out := d.shallow()
	if _, ok := out.columns[name]; !ok {
		out.names = append(out.names, name)
	}
	out.columns[name] = col
	return out
}

// SelectRows returns a new series holding only the rows for which keep is true.
func (d *DerivedSeries) SelectRows(keep []bool) *DerivedSeries {
	out := &DerivedSeries{
		Symbol:  d.Symbol,
		Period:  d.Period,
		Bars:    make([]OHLCV, 0, len(d.Bars)),
		names:   slices.Clone(d.names),
		columns: make(map[string][]float64, len(d.columns)),
	}
	for _, name := range d.names {
		out.columns[name] = make([]float64, 0, len(d.Bars))
	}
	for i, b := range d.Bars {
		if !keep[i] {
			continue
		}
		out.Bars = append(out.Bars, b)
		for _, name := range d.names {
			out.columns[name] = append(out.columns[name], d.columns[name][i])
		}
	}
	return out
}

func (d *DerivedSeries) shallow() *DerivedSeries {
	cols := make(map[string][]float64, len(d.columns)+1)
	for k, v := range d.columns {
		cols[k] = v
	}
	return &DerivedSeries{
		Symbol:  d.Symbol,
		Period:  d.Period,
		Bars:    d.Bars,
		names:   slices.Clone(d.names),
		columns: cols,
	}
}
