package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"MarketMath/internal/calculator"
	"MarketMath/internal/metrics"
	"MarketMath/internal/model"
)

// Collector fetches price series and runs the indicator pipeline on them.
type Collector struct {
	Fetcher Fetcher
	Options calculator.Options
	Metrics *metrics.Recorder
	Log     zerolog.Logger
	now     func() time.Time
}

// NewCollector creates a new Collector. rec may be nil.
func NewCollector(fetcher Fetcher, opts calculator.Options, rec *metrics.Recorder, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Options: opts,
		Metrics: rec,
		Log:     log.With().Str("component", "collector").Logger(),
		now:     time.Now,
	}
}

// Analyze fetches one symbol and computes its derived series, summary and statistics.
// A symbol with no data yields an empty analysis, not an error.
func (c *Collector) Analyze(ctx context.Context, symbol string, period model.Period) (*model.Analysis, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}
	start := c.now()
	log := c.Log.With().Str("symbol", symbol).Str("period", string(period)).Logger()

	bars, err := c.Fetcher.FetchBars(ctx, symbol, period)
	if err != nil {
		c.Metrics.RecordAnalysis(symbol, metrics.OutcomeFailed, 0, 0, c.now().Sub(start))
		log.Warn().Err(err).Str("source", c.Fetcher.Name()).Msg("fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	series := model.PriceSeries{Symbol: symbol, Period: period, Bars: bars, FetchedAt: c.now()}
	ds, err := calculator.ProcessWith(series, c.Options)
	if err != nil {
		c.Metrics.RecordAnalysis(symbol, metrics.OutcomeInvalid, len(bars), 0, c.now().Sub(start))
		log.Error().Err(err).Msg("pipeline rejected series")
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	a := &model.Analysis{
		Symbol:    symbol,
		Period:    period,
		InputRows: len(bars),
		Series:    ds,
		Summary:   calculator.Summarize(ds, c.Options.SMAWindow),
		Stats:     calculator.Describe(ds),
		Duration:  c.now().Sub(start),
	}

	outcome := metrics.OutcomeOK
	if a.Empty() {
		outcome = metrics.OutcomeEmpty
		log.Warn().Int("input_rows", len(bars)).Int("warmup_rows", c.Options.WarmupRows()).
			Msg("not enough history, result is empty")
	} else {
		c.Metrics.RecordLastClose(symbol, a.Summary.LastClose)
		log.Info().Int("input_rows", len(bars)).Int("output_rows", ds.Len()).
			Dur("elapsed", a.Duration).Msg("analysis done")
	}
	c.Metrics.RecordAnalysis(symbol, outcome, len(bars), ds.Len(), a.Duration)
	return a, nil
}

// Compare analyzes two symbols concurrently and rebases both close series to
// calculator.RebaseBase for a shared axis.
func (c *Collector) Compare(ctx context.Context, left, right string, period model.Period) (*model.Comparison, error) {
	var cmp model.Comparison
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := c.Analyze(gctx, left, period)
		cmp.Left = a
		return err
	})
	g.Go(func() error {
		a, err := c.Analyze(gctx, right, period)
		cmp.Right = a
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare %s/%s: %w", left, right, err)
	}

	var err error
	if cmp.LeftRebased, err = calculator.Rebase(cmp.Left.Series, model.FieldClose, calculator.RebaseBase); err != nil {
		return nil, err
	}
	if cmp.RightRebased, err = calculator.Rebase(cmp.Right.Series, model.FieldClose, calculator.RebaseBase); err != nil {
		return nil, err
	}
	return &cmp, nil
}
