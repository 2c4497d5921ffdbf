package calculator

import (
	"fmt"

	"MarketMath/internal/model"
)

// Derivatives adds Velocity (first difference of price) and Acceleration
// (first difference of Velocity).
func Derivatives(s *model.DerivedSeries, field model.PriceField) (*model.DerivedSeries, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("derivatives: %w: %q", ErrUnknownField, field)
	}
	velocity := diff(s.Prices(field))
	acceleration := diff(velocity)
	return s.WithColumn(model.ColVelocity, velocity).
		WithColumn(model.ColAcceleration, acceleration), nil
}

// diff returns x[t]-x[t-1] with row 0 undefined.
func diff(x []float64) []float64 {
	out := undefinedColumn(len(x))
	for i := 1; i < len(x); i++ {
		out[i] = x[i] - x[i-1]
	}
	return out
}
