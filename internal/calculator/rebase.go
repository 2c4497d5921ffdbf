package calculator

import (
	"fmt"

	"MarketMath/internal/model"
)

// RebaseBase is the starting level of rebased comparison series.
const RebaseBase = 100.0

// Rebase adds the Rebased column, P[t] / P[0] * base, so two assets can share one axis.
// A non-positive first price leaves the whole column undefined.
func Rebase(s *model.DerivedSeries, field model.PriceField, base float64) (*model.DerivedSeries, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("rebase: %w: %q", ErrUnknownField, field)
	}
	prices := s.Prices(field)
	col := undefinedColumn(len(prices))
	if len(prices) > 0 && positive(prices[0]) {
		for i, p := range prices {
			col[i] = p / prices[0] * base
		}
	}
	return s.WithColumn(model.ColRebased, col), nil
}
