package calculator

import (
	"fmt"

	"MarketMath/internal/model"
)

// Options configures the pipeline.
type Options struct {
	Field            model.PriceField
	VolatilityWindow int
	SMAWindow        int
}

// DefaultOptions returns Close prices, a 21-row volatility window and a 30-row SMA.
func DefaultOptions() Options {
	return Options{
		Field:            model.FieldClose,
		VolatilityWindow: DefaultVolatilityWindow,
		SMAWindow:        DefaultSMAWindow,
	}
}

// Validate checks the options without looking at any data.
func (o Options) Validate() error {
	if !o.Field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, o.Field)
	}
	if o.VolatilityWindow < 3 {
		return fmt.Errorf("volatility %w: %d", ErrInvalidWindow, o.VolatilityWindow)
	}
	if o.SMAWindow < 1 {
		return fmt.Errorf("sma %w: %d", ErrInvalidWindow, o.SMAWindow)
	}
	return nil
}

// WarmupRows is how many leading input rows the drop step removes from a
// fully positive input.
func (o Options) WarmupRows() int {
	return max(1, 1, 2, o.VolatilityWindow-1, o.SMAWindow-1)
}

// Process runs the pipeline with DefaultOptions.
func Process(series model.PriceSeries) (*model.DerivedSeries, error) {
	return ProcessWith(series, DefaultOptions())
}

// ProcessWith derives LogReturn, Velocity, Acceleration, Volatility and SMA
// in that order, then drops every row with an undefined derived value.
// An empty input gives an empty result and no error. The input is never modified.
func ProcessWith(series model.PriceSeries, opts Options) (*model.DerivedSeries, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("process %s: %w", series.Symbol, err)
	}
	if err := checkOrder(series.Bars); err != nil {
		return nil, fmt.Errorf("process %s: %w", series.Symbol, err)
	}

	ds := model.NewDerivedSeries(series)
	if ds.Empty() {
		return ds, nil
	}

	ds, err := LogReturns(ds, opts.Field)
	if err != nil {
		return nil, err
	}
	if ds, err = Derivatives(ds, opts.Field); err != nil {
		return nil, err
	}
	if ds, err = Volatility(ds, opts.VolatilityWindow); err != nil {
		return nil, err
	}
	if ds, err = SMA(ds, opts.SMAWindow, opts.Field); err != nil {
		return nil, err
	}
	return DropUndefined(ds), nil
}

// DropUndefined keeps only rows where every derived column is defined.
func DropUndefined(s *model.DerivedSeries) *model.DerivedSeries {
	keep := make([]bool, s.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range s.Columns() {
		for i := range keep {
			if keep[i] && !IsDefined(s.At(name, i)) {
				keep[i] = false
			}
		}
	}
	return s.SelectRows(keep)
}

func checkOrder(bars []model.OHLCV) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return fmt.Errorf("%w: row %d (%s) after %s", ErrUnorderedSeries, i,
				bars[i].Time.Format("2006-01-02"), bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}
