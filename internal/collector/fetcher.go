package collector

import (
	"context"

	"MarketMath/internal/model"
)

// Fetcher defines the interface for fetching daily bars.
// Implementations return bars in chronological order; an empty slice is a valid "no data" answer.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error)
	Name() string
}
