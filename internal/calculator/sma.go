package calculator

import (
	"fmt"

	"MarketMath/internal/model"
)

// DefaultSMAWindow is the default moving-average length.
const DefaultSMAWindow = 30

// SMAColumn names the moving-average column for a window, e.g. "SMA_30".
func SMAColumn(window int) string {
	return fmt.Sprintf("SMA_%d", window)
}

// SMA adds the trailing arithmetic mean of field over window observations.
// Rows before window-1 are undefined.
func SMA(s *model.DerivedSeries, window int, field model.PriceField) (*model.DerivedSeries, error) {
	if window < 1 {
		return nil, fmt.Errorf("sma: %w: %d (need >= 1)", ErrInvalidWindow, window)
	}
	if !field.Valid() {
		return nil, fmt.Errorf("sma: %w: %q", ErrUnknownField, field)
	}
	prices := s.Prices(field)
	col := undefinedColumn(len(prices))
	for t := window - 1; t < len(prices); t++ {
		col[t] = mean(prices[t-window+1 : t+1])
	}
	return s.WithColumn(SMAColumn(window), col), nil
}
