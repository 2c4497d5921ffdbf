package quotecache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"MarketMath/internal/collector"
	"MarketMath/internal/model"
)

// DefaultTTL keeps daily bars for a few hours; they only change once a session closes.
const DefaultTTL = 6 * time.Hour

// Store is the cache backend used by CachingFetcher.
type Store interface {
	Get(symbol string, period model.Period) (Entry, bool, error)
	Put(symbol string, period model.Period, bars []model.OHLCV, fetchedAt time.Time) error
}

// CachingFetcher serves bars from Store while they are younger than TTL and
// refreshes them from Upstream otherwise. If the refresh fails, a stale entry
// is served instead of the error.
type CachingFetcher struct {
	Upstream collector.Fetcher
	Store    Store
	TTL      time.Duration
	Log      zerolog.Logger
	Now      func() time.Time
}

var _ collector.Fetcher = (*CachingFetcher)(nil)

// NewCachingFetcher wraps upstream with store.
func NewCachingFetcher(upstream collector.Fetcher, store Store, ttl time.Duration, log zerolog.Logger) *CachingFetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachingFetcher{
		Upstream: upstream,
		Store:    store,
		TTL:      ttl,
		Log:      log.With().Str("component", "quotecache").Logger(),
		Now:      time.Now,
	}
}

func (f *CachingFetcher) Name() string { return f.Upstream.Name() + "+sqlite" }

func (f *CachingFetcher) FetchBars(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	log := f.Log.With().Str("symbol", symbol).Str("period", string(period)).Logger()

	entry, ok, err := f.Store.Get(symbol, period)
	if err != nil {
		log.Warn().Err(err).Msg("cache read failed, fetching upstream")
		ok = false
	}
	now := f.Now()
	if ok && now.Sub(entry.FetchedAt) < f.TTL {
		log.Debug().Int("bars", len(entry.Bars)).Msg("cache hit")
		return entry.Bars, nil
	}

	bars, err := f.Upstream.FetchBars(ctx, symbol, period)
	if err != nil {
		if ok {
			log.Warn().Err(err).Time("fetched_at", entry.FetchedAt).Msg("upstream failed, serving stale bars")
			return entry.Bars, nil
		}
		return nil, err
	}
	if err := f.Store.Put(symbol, period, bars, now); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	return bars, nil
}
