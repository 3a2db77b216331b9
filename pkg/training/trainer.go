package training

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/metrics"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
	"github.com/knowater521/Neuraxle/pkg/steps"
)

// TrainerConfig holds trainer configuration options.
type TrainerConfig struct {
	// Name labels this trainer in logs and metrics (defaults to the
	// step name).
	Name string

	// Epochs is the number of fit passes over the data (defaults to 1).
	Epochs int

	// ShuffleSeed seeds the per-epoch shuffle. Zero means the shuffler
	// default.
	ShuffleSeed int64

	// NoShuffle disables the per-epoch shuffle.
	NoShuffle bool

	// Logger receives training progress. Nil means no logging.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry

	// OnEpochEnd is called after each epoch.
	OnEpochEnd func(epoch int, duration time.Duration)
}

// Report summarizes a completed training run.
type Report struct {
	// RunID is the execution context's run ID.
	RunID string

	// Epochs is the number of epochs that ran.
	Epochs int

	// Duration is the total training time.
	Duration time.Duration

	// EpochDurations holds the duration of each epoch in order.
	EpochDurations []time.Duration
}

// Trainer fits a step over several epochs, reshuffling the training data
// before each pass. The step is fitted in training mode; Evaluate runs
// the fitted step in test mode.
type Trainer struct {
	step     pipeline.Step
	config   TrainerConfig
	shuffler *steps.DataShuffler
	logger   zerolog.Logger
}

// New creates a single-epoch trainer with shuffling enabled.
func New(step pipeline.Step) *Trainer {
	return NewWithConfig(step, TrainerConfig{})
}

// NewWithConfig creates a trainer with the given configuration. Panics
// if step is nil.
func NewWithConfig(step pipeline.Step, config TrainerConfig) *Trainer {
	if step == nil {
		panic("trainer: step cannot be nil")
	}
	if config.Epochs < 1 {
		config.Epochs = 1
	}
	if config.Name == "" {
		config.Name = step.Name()
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	t := &Trainer{
		step:   step,
		config: config,
		logger: logger,
	}
	if !config.NoShuffle {
		t.shuffler = steps.NewDataShuffler(config.ShuffleSeed)
	}
	return t
}

// Name returns the trainer name.
func (t *Trainer) Name() string {
	return t.config.Name
}

// Step returns the step being trained.
func (t *Trainer) Step() pipeline.Step {
	return t.step
}

// Train fits the step on the container for the configured number of
// epochs. Every epoch fits on a fresh copy of the data, shuffled unless
// NoShuffle is set.
func (t *Trainer) Train(ctx context.Context, dc *data.Container) (*Report, error) {
	ec := pipeline.NewExecutionContext().WithLogger(t.logger)

	start := time.Now()
	report := &Report{
		RunID:          ec.RunID,
		EpochDurations: make([]time.Duration, 0, t.config.Epochs),
	}

	t.logger.Info().
		Str("trainer", t.config.Name).
		Str("run_id", ec.RunID).
		Int("epochs", t.config.Epochs).
		Int("samples", dc.Len()).
		Msg("training started")

	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			t.countError()
			return nil, err
		}

		epochStart := time.Now()
		epochData := dc.Copy()

		if t.shuffler != nil {
			var err error
			epochData, err = t.shuffler.Transform(ctx, epochData, ec)
			if err != nil {
				t.countError()
				return nil, fmt.Errorf("trainer %s: shuffle epoch %d: %w", t.config.Name, epoch, err)
			}
		}

		if err := t.step.Fit(ctx, epochData, ec); err != nil {
			t.countError()
			return nil, fmt.Errorf("trainer %s: epoch %d/%d: %w", t.config.Name, epoch, t.config.Epochs, err)
		}

		epochDuration := time.Since(epochStart)
		report.Epochs = epoch
		report.EpochDurations = append(report.EpochDurations, epochDuration)

		if reg := t.config.Metrics; reg != nil {
			reg.EpochsRun.WithLabelValues(t.config.Name).Inc()
			reg.EpochDuration.WithLabelValues(t.config.Name).Observe(epochDuration.Seconds())
		}
		if t.config.OnEpochEnd != nil {
			t.config.OnEpochEnd(epoch, epochDuration)
		}
		t.logger.Debug().
			Str("trainer", t.config.Name).
			Int("epoch", epoch).
			Dur("duration", epochDuration).
			Msg("epoch finished")
	}

	report.Duration = time.Since(start)

	if reg := t.config.Metrics; reg != nil {
		reg.TrainingRuns.WithLabelValues(t.config.Name).Inc()
	}
	t.logger.Info().
		Str("trainer", t.config.Name).
		Str("run_id", report.RunID).
		Dur("duration", report.Duration).
		Msg("training finished")

	return report, nil
}

// Evaluate runs the fitted step's Transform in test mode.
func (t *Trainer) Evaluate(ctx context.Context, dc *data.Container) (*data.Container, error) {
	ec := pipeline.NewExecutionContext().WithLogger(t.logger).WithMode(pipeline.ModeTest)
	return t.step.Transform(ctx, dc, ec)
}

func (t *Trainer) countError() {
	if reg := t.config.Metrics; reg != nil {
		reg.TrainingErrors.WithLabelValues(t.config.Name).Inc()
	}
}
