package calculator

import (
	"fmt"
	"math"

	"MarketMath/internal/model"
)

// LogReturns adds the LogReturn column, ln(P[t]/P[t-1]).
// Row 0 is undefined; so is any row where either price is non-positive or not finite.
func LogReturns(s *model.DerivedSeries, field model.PriceField) (*model.DerivedSeries, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("log returns: %w: %q", ErrUnknownField, field)
	}
	prices := s.Prices(field)
	col := undefinedColumn(len(prices))
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if !positive(prev) || !positive(cur) {
			continue
		}
		col[i] = math.Log(cur / prev)
	}
	return s.WithColumn(model.ColLogReturn, col), nil
}

func positive(v float64) bool {
	return IsDefined(v) && v > 0
}
