package calculator

import (
	"fmt"

	"MarketMath/internal/model"
)

// DefaultVolatilityWindow is roughly one trading month.
const DefaultVolatilityWindow = 21

// Volatility adds the annualized rolling standard deviation of LogReturn.
//
// The window at row t covers the trailing window price observations, i.e. the
// window-1 log returns ending at t. Rows before window-1 are undefined, and any
// undefined return inside the window leaves the cell undefined.
// The LogReturn column must already be present; see VolatilityFromPrices.
func Volatility(s *model.DerivedSeries, window int) (*model.DerivedSeries, error) {
	if window < 3 {
		return nil, fmt.Errorf("volatility: %w: %d (need >= 3)", ErrInvalidWindow, window)
	}
	if !s.Has(model.ColLogReturn) {
		return nil, fmt.Errorf("volatility: %w: %s", ErrMissingColumn, model.ColLogReturn)
	}
	returns, _ := s.Column(model.ColLogReturn)
	col := undefinedColumn(len(returns))
	for t := window - 1; t < len(returns); t++ {
		sd := sampleStd(returns[t-window+2 : t+1])
		if IsDefined(sd) {
			col[t] = sd * annualization
		}
	}
	return s.WithColumn(model.ColVolatility, col), nil
}

// VolatilityFromPrices derives LogReturn from field and then Volatility.
func VolatilityFromPrices(s *model.DerivedSeries, field model.PriceField, window int) (*model.DerivedSeries, error) {
	withReturns, err := LogReturns(s, field)
	if err != nil {
		return nil, err
	}
	return Volatility(withReturns, window)
}
