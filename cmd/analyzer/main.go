package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"MarketMath/internal/collector"
	"MarketMath/internal/config"
	"MarketMath/internal/logger"
	"MarketMath/internal/metrics"
	"MarketMath/internal/model"
	"MarketMath/internal/quotecache"
	"MarketMath/internal/report"
	"MarketMath/internal/scheduler"
)

func main() {
	cfgPath := flag.String("config", "", "config path (default $CONFIG_PATH or configs/config.yaml)")
	symbols := flag.String("symbols", "", "one or two comma separated tickers, overrides config")
	period := flag.String("period", "", "lookback period: 1mo 3mo 6mo 1y 2y 5y 10y ytd max")
	csvPath := flag.String("csv", "", "write the derived table of the first symbol to this CSV file")
	once := flag.Bool("once", false, "run one analysis and exit even if a schedule is configured")
	flag.Parse()

	if err := run(*cfgPath, *symbols, *period, *csvPath, *once); err != nil {
		fmt.Fprintf(os.Stderr, "analyzer: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, symbols, period, csvPath string, once bool) error {
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if symbols != "" {
		cfg.Analysis.Symbols = config.SplitSymbols(symbols)
	}
	if period != "" {
		cfg.Analysis.Period = period
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
	if err != nil {
		return err
	}
	log.Info().Strs("symbols", cfg.Analysis.Symbols).Str("period", cfg.Analysis.Period).Msg("MarketMath starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var fetcher collector.Fetcher
	switch cfg.DataSource.Type {
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100}
	default:
		fetcher = collector.NewYahooFetcher(cfg.DataSource.Proxy, cfg.DataSource.Timeout)
	}
	if cfg.Cache.SQLitePath != "" {
		store, err := quotecache.NewSQLiteStore(cfg.Cache.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite quote cache failed, fetching without cache")
		} else {
			defer store.Close()
			fetcher = quotecache.NewCachingFetcher(fetcher, store, cfg.Cache.TTL, log)
		}
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	rec := metrics.New()
	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr, cfg.Metrics.Path, rec, log)
		defer stop()
	}

	col := collector.NewCollector(fetcher, cfg.PipelineOptions(), rec, log)

	if csvPath != "" {
		if err := exportCSV(ctx, col, cfg.Analysis.Symbols[0], cfg.Period(), csvPath); err != nil {
			return err
		}
		log.Info().Str("path", csvPath).Msg("derived table written")
	}

	sched := scheduler.NewScheduler(ctx, col, scheduler.Job{
		Symbols:  cfg.Analysis.Symbols,
		Period:   cfg.Period(),
		TailRows: cfg.Report.TailRows,
		Out:      os.Stdout,
	}, log)

	if once || cfg.Schedule.Cron == "" {
		return sched.RunNow()
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, running analysis now")
		if err := sched.RunNow(); err != nil {
			log.Error().Err(err).Msg("initial analysis failed")
		}
	}

	log.Info().Msg("MarketMath is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping...")
	return nil
}

func exportCSV(ctx context.Context, col *collector.Collector, symbol string, period model.Period, path string) error {
	a, err := col.Analyze(ctx, symbol, period)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := report.WriteCSV(f, a.Series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serveMetrics(addr, path string, rec *metrics.Recorder, log zerolog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle(path, rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Str("path", path).Msg("metrics endpoint listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
