package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MarketMath/internal/collector"
	"MarketMath/internal/model"
	"MarketMath/internal/report"
)

// Analyzer is the part of collector.Collector the scheduler drives.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, period model.Period) (*model.Analysis, error)
	Compare(ctx context.Context, left, right string, period model.Period) (*model.Comparison, error)
}

var _ Analyzer = (*collector.Collector)(nil)

// Job describes what a run analyzes and where the report goes.
type Job struct {
	Symbols  []string
	Period   model.Period
	TailRows int
	Out      io.Writer
}

// Scheduler runs the analysis job on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Job      Job
	Log      zerolog.Logger
	Ctx      context.Context

	mu  sync.Mutex // serializes writes to Job.Out
	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, analyzer Analyzer, job Job, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: analyzer,
		Job:      job,
		Log:      log.With().Str("component", "scheduler").Logger(),
		Ctx:      ctx,
		now:      time.Now,
	}
}

// Register adds the analysis job under a six-field cron spec (seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.task); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	s.Log.Info().Str("cron", spec).Strs("symbols", s.Job.Symbols).Msg("analysis task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow executes the job immediately and returns its error.
func (s *Scheduler) RunNow() error {
	return s.run(s.Ctx)
}

func (s *Scheduler) task() {
	if err := s.run(s.Ctx); err != nil {
		s.Log.Error().Err(err).Msg("scheduled analysis failed")
	}
}

func (s *Scheduler) run(ctx context.Context) error {
	var text string
	switch len(s.Job.Symbols) {
	case 1:
		a, err := s.Analyzer.Analyze(ctx, s.Job.Symbols[0], s.Job.Period)
		if err != nil {
			return err
		}
		text = report.FormatAnalysis(a, s.Job.TailRows)
	case 2:
		c, err := s.Analyzer.Compare(ctx, s.Job.Symbols[0], s.Job.Symbols[1], s.Job.Period)
		if err != nil {
			return err
		}
		text = report.FormatComparison(c, s.Job.TailRows)
	default:
		return fmt.Errorf("expected 1 or 2 symbols, got %d", len(s.Job.Symbols))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.Job.Out, report.Header(s.now(), s.Job.Symbols)+text); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
