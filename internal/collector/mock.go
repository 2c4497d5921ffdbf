package collector

import (
	"context"
	"math"
	"time"

	"MarketMath/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Now   time.Time
	// Data, when set, serves bars per symbol instead of generated ones; unknown symbols fail.
	Data map[string][]model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data != nil {
		bars, ok := m.Data[symbol]
		if !ok {
			return nil, ErrSymbolNotFound
		}
		return bars, nil
	}
	now := m.Now
	if now.IsZero() {
		now = time.Now().UTC().Truncate(24 * time.Hour)
	}
	count := period.ApproxBars(now)
	if count == 0 {
		count = 2520
	}
	return GenerateMockBars(m.Price, count, now), nil
}

// GenerateMockBars builds count daily bars ending the day before end, following
// a gentle oscillating drift around basePrice.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * math.Exp(float64(i-count/2)*0.0005) * (1 + 0.02*math.Sin(float64(i)/5))
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
