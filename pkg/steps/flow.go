package steps

import (
	"context"
	"fmt"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// TrainOnlyWrapper executes the wrapped step only in training mode. In
// test mode the container passes through untouched.
type TrainOnlyWrapper struct {
	wrapped pipeline.Step
}

// NewTrainOnlyWrapper wraps a step so it only runs while training.
// Panics if wrapped is nil.
func NewTrainOnlyWrapper(wrapped pipeline.Step) *TrainOnlyWrapper {
	if wrapped == nil {
		panic("train only wrapper: wrapped step cannot be nil")
	}
	return &TrainOnlyWrapper{wrapped: wrapped}
}

// Name returns the step name.
func (w *TrainOnlyWrapper) Name() string {
	return fmt.Sprintf("train-only[%s]", w.wrapped.Name())
}

// Wrapped returns the delegate step.
func (w *TrainOnlyWrapper) Wrapped() pipeline.Step {
	return w.wrapped
}

// Fit fits the wrapped step in training mode, otherwise does nothing.
func (w *TrainOnlyWrapper) Fit(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) error {
	if !ec.IsTrain() {
		return nil
	}
	return w.wrapped.Fit(ctx, dc, ec)
}

// Transform transforms through the wrapped step in training mode,
// otherwise returns the container unchanged.
func (w *TrainOnlyWrapper) Transform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	if !ec.IsTrain() {
		return dc, nil
	}
	return w.wrapped.Transform(ctx, dc, ec)
}

// FitTransform fit-transforms through the wrapped step in training mode,
// otherwise returns the container unchanged.
func (w *TrainOnlyWrapper) FitTransform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	if !ec.IsTrain() {
		return dc, nil
	}
	return pipeline.FitTransform(ctx, w.wrapped, dc, ec)
}

// TestOnlyWrapper executes the wrapped step only in test mode. In
// training mode the container passes through untouched.
type TestOnlyWrapper struct {
	wrapped pipeline.Step
}

// NewTestOnlyWrapper wraps a step so it only runs in test mode.
// Panics if wrapped is nil.
func NewTestOnlyWrapper(wrapped pipeline.Step) *TestOnlyWrapper {
	if wrapped == nil {
		panic("test only wrapper: wrapped step cannot be nil")
	}
	return &TestOnlyWrapper{wrapped: wrapped}
}

// Name returns the step name.
func (w *TestOnlyWrapper) Name() string {
	return fmt.Sprintf("test-only[%s]", w.wrapped.Name())
}

// Wrapped returns the delegate step.
func (w *TestOnlyWrapper) Wrapped() pipeline.Step {
	return w.wrapped
}

// Fit fits the wrapped step in test mode, otherwise does nothing.
func (w *TestOnlyWrapper) Fit(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) error {
	if ec.IsTrain() {
		return nil
	}
	return w.wrapped.Fit(ctx, dc, ec)
}

// Transform transforms through the wrapped step in test mode, otherwise
// returns the container unchanged.
func (w *TestOnlyWrapper) Transform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	if ec.IsTrain() {
		return dc, nil
	}
	return w.wrapped.Transform(ctx, dc, ec)
}

// FitTransform fit-transforms through the wrapped step in test mode,
// otherwise returns the container unchanged.
func (w *TestOnlyWrapper) FitTransform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	if ec.IsTrain() {
		return dc, nil
	}
	return pipeline.FitTransform(ctx, w.wrapped, dc, ec)
}
