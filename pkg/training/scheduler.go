package training

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/metrics"
)

// Source supplies fresh training data for a retraining run.
type Source func(ctx context.Context) (*data.Container, error)

// SchedulerConfig holds retrain scheduler configuration options.
type SchedulerConfig struct {
	// Name labels this scheduler in logs and metrics (defaults to the
	// trainer name).
	Name string

	// CronExpr triggers retraining on a cron schedule. Uses the
	// six-field form with seconds.
	CronExpr string

	// Interval triggers retraining on a fixed interval. Ignored when
	// CronExpr is set.
	Interval time.Duration

	// TickInterval is how often the scheduler checks for a due run
	// (defaults to 1s).
	TickInterval time.Duration

	// RunTimeout bounds each retraining run. Zero means no timeout.
	RunTimeout time.Duration

	// Location is the time zone for cron scheduling (defaults to
	// time.Local).
	Location *time.Location

	// Logger receives scheduler progress. Nil means no logging.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry
}

// RetrainScheduler periodically refits a trainer on fresh data from a
// source. Runs never stack: a trigger that fires while a run is still in
// progress is skipped.
type RetrainScheduler struct {
	trainer *Trainer
	source  Source
	config  SchedulerConfig

	schedule cron.Schedule
	logger   zerolog.Logger

	mu         sync.Mutex
	nextRun    time.Time
	lastReport *Report
	running    bool
	refitting  bool
	ticker     *time.Ticker
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewRetrainScheduler creates a scheduler refitting trainer with data
// from source. Either CronExpr or a positive Interval must be set.
func NewRetrainScheduler(trainer *Trainer, source Source, config SchedulerConfig) (*RetrainScheduler, error) {
	if trainer == nil {
		return nil, fmt.Errorf("retrain scheduler: trainer cannot be nil")
	}
	if source == nil {
		return nil, fmt.Errorf("retrain scheduler: source cannot be nil")
	}
	if config.CronExpr == "" && config.Interval <= 0 {
		return nil, fmt.Errorf("retrain scheduler: either CronExpr or a positive Interval is required")
	}

	if config.Name == "" {
		config.Name = trainer.Name()
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	s := &RetrainScheduler{
		trainer: trainer,
		source:  source,
		config:  config,
		logger:  zerolog.Nop(),
		done:    make(chan struct{}),
	}
	if config.Logger != nil {
		s.logger = *config.Logger
	}

	if config.CronExpr != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		schedule, err := parser.Parse(config.CronExpr)
		if err != nil {
			return nil, fmt.Errorf("retrain scheduler: invalid cron expression: %w", err)
		}
		s.schedule = schedule
	}

	return s, nil
}

// Start begins watching for due retraining runs.
func (s *RetrainScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("retrain scheduler already running, call Stop() first")
	}

	s.running = true
	s.nextRun = s.next(time.Now())
	s.ticker = time.NewTicker(s.config.TickInterval)

	go s.run()
	return nil
}

// Stop halts scheduling. The returned channel closes once any in-flight
// retraining run has finished.
func (s *RetrainScheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.done)
		s.ticker.Stop()
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.wg.Wait()
	}()
	return stopped
}

// NextRun returns when the next retraining run is due.
func (s *RetrainScheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// LastReport returns the report of the most recent successful run, or
// nil if none has completed yet.
func (s *RetrainScheduler) LastReport() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

func (s *RetrainScheduler) next(now time.Time) time.Time {
	if s.schedule != nil {
		return s.schedule.Next(now.In(s.config.Location))
	}
	return now.Add(s.config.Interval)
}

func (s *RetrainScheduler) run() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.ticker.C:
			s.maybeRefit(now)
		}
	}
}

// maybeRefit launches a retraining run if one is due and none is in
// progress.
func (s *RetrainScheduler) maybeRefit(now time.Time) {
	s.mu.Lock()
	if now.Before(s.nextRun) {
		s.mu.Unlock()
		return
	}
	s.nextRun = s.next(now)

	if s.refitting {
		s.mu.Unlock()
		s.logger.Warn().
			Str("scheduler", s.config.Name).
			Msg("retraining still in progress, skipping trigger")
		if reg := s.config.Metrics; reg != nil {
			reg.RetrainSkipped.WithLabelValues(s.config.Name).Inc()
		}
		return
	}
	s.refitting = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.refitting = false
			s.mu.Unlock()
			s.wg.Done()
		}()
		s.refit()
	}()
}

func (s *RetrainScheduler) refit() {
	ctx := context.Background()
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	dc, err := s.source(ctx)
	if err == nil {
		var report *Report
		report, err = s.trainer.Train(ctx, dc)
		if err == nil {
			s.mu.Lock()
			s.lastReport = report
			s.mu.Unlock()
		}
	}

	if err != nil {
		if reg := s.config.Metrics; reg != nil {
			reg.RetrainFailures.WithLabelValues(s.config.Name).Inc()
		}
		s.logger.Error().
			Err(err).
			Str("scheduler", s.config.Name).
			Dur("duration", time.Since(start)).
			Msg("retraining failed")
		return
	}

	if reg := s.config.Metrics; reg != nil {
		reg.RetrainRuns.WithLabelValues(s.config.Name).Inc()
	}
	s.logger.Info().
		Str("scheduler", s.config.Name).
		Dur("duration", time.Since(start)).
		Msg("retraining finished")
}
