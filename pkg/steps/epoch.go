package steps

import (
	"context"
	"fmt"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// EpochRepeaterConfig holds EpochRepeater configuration options.
type EpochRepeaterConfig struct {
	// Epochs is the number of fit passes over the data. Must be >= 1.
	Epochs int

	// FitOnly skips the extra fit passes during FitTransform, so only
	// the single fit-transform pass runs.
	FitOnly bool

	// RepeatInTestMode repeats epochs in test mode too. By default the
	// repetition collapses to a single pass outside of training.
	RepeatInTestMode bool
}

// EpochRepeater repeats the wrapped step's fit for a configured number
// of epochs. Each extra pass fits on a copy of the container so steps
// that mutate their input see the original data every epoch.
type EpochRepeater struct {
	wrapped pipeline.Step
	config  EpochRepeaterConfig
}

// NewEpochRepeater creates a repeater running the wrapped step's fit for
// the given number of epochs. Panics if wrapped is nil or epochs < 1.
func NewEpochRepeater(wrapped pipeline.Step, epochs int) *EpochRepeater {
	return NewEpochRepeaterWithConfig(wrapped, EpochRepeaterConfig{Epochs: epochs})
}

// NewEpochRepeaterWithConfig creates a repeater with the given
// configuration. Panics if wrapped is nil or config.Epochs < 1.
func NewEpochRepeaterWithConfig(wrapped pipeline.Step, config EpochRepeaterConfig) *EpochRepeater {
	if wrapped == nil {
		panic("epoch repeater: wrapped step cannot be nil")
	}
	if config.Epochs < 1 {
		panic("epoch repeater: epochs must be >= 1")
	}
	return &EpochRepeater{wrapped: wrapped, config: config}
}

// Name returns the step name.
func (r *EpochRepeater) Name() string {
	return fmt.Sprintf("epoch-repeater[%s]", r.wrapped.Name())
}

// Wrapped returns the delegate step.
func (r *EpochRepeater) Wrapped() pipeline.Step {
	return r.wrapped
}

// Epochs returns the configured epoch count.
func (r *EpochRepeater) Epochs() int {
	return r.config.Epochs
}

// Fit fits the wrapped step once per epoch, each time on a copy of the
// container. An epoch failure aborts the remaining epochs.
func (r *EpochRepeater) Fit(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) error {
	epochs := r.effectiveEpochs(ec)
	for epoch := 1; epoch <= epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.wrapped.Fit(ctx, dc.Copy(), ec); err != nil {
			return fmt.Errorf("epoch %d/%d: %w", epoch, epochs, err)
		}
		ec.Logger.Debug().
			Str("step", r.wrapped.Name()).
			Int("epoch", epoch).
			Int("epochs", epochs).
			Msg("epoch complete")
	}
	return nil
}

// Transform delegates to the wrapped step.
func (r *EpochRepeater) Transform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	return r.wrapped.Transform(ctx, dc, ec)
}

// FitTransform fits the wrapped step for all but the last epoch on
// container copies, then fit-transforms once. With FitOnly set, only the
// final fit-transform pass runs.
func (r *EpochRepeater) FitTransform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	if !r.config.FitOnly {
		epochs := r.effectiveEpochs(ec)
		for epoch := 1; epoch < epochs; epoch++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := r.wrapped.Fit(ctx, dc.Copy(), ec); err != nil {
				return nil, fmt.Errorf("epoch %d/%d: %w", epoch, epochs, err)
			}
		}
	}
	return pipeline.FitTransform(ctx, r.wrapped, dc, ec)
}

// effectiveEpochs collapses repetition to one pass in test mode unless
// configured otherwise.
func (r *EpochRepeater) effectiveEpochs(ec *pipeline.ExecutionContext) int {
	if ec.IsTrain() || r.config.RepeatInTestMode {
		return r.config.Epochs
	}
	return 1
}
