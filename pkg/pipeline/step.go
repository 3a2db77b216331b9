package pipeline

import (
	"context"
	"errors"

	"github.com/knowater521/Neuraxle/pkg/data"
)

// Common pipeline errors.
var (
	// ErrEmptyPipeline indicates a pipeline with no steps was executed.
	ErrEmptyPipeline = errors.New("pipeline has no steps")

	// ErrNilStep indicates a nil step was supplied where a step is required.
	ErrNilStep = errors.New("step cannot be nil")
)

// Step is a unit of a pipeline exposing fit and transform operations over
// a data container. Steps may mutate the container they receive.
type Step interface {
	// Name returns an identifier for this step.
	Name() string

	// Fit learns from the container. Non-fittable steps return nil.
	Fit(ctx context.Context, dc *data.Container, ec *ExecutionContext) error

	// Transform processes the container and returns the result.
	Transform(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error)
}

// FitTransformer is implemented by steps that fit and transform in a
// single pass. The FitTransform helper upgrades to it when available.
type FitTransformer interface {
	FitTransform(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error)
}

// FitTransform fits the step on the container and transforms it. Steps
// implementing FitTransformer handle both in one pass; others are fitted
// and then transformed.
func FitTransform(ctx context.Context, step Step, dc *data.Container, ec *ExecutionContext) (*data.Container, error) {
	if step == nil {
		return nil, ErrNilStep
	}
	if ft, ok := step.(FitTransformer); ok {
		return ft.FitTransform(ctx, dc, ec)
	}
	if err := step.Fit(ctx, dc, ec); err != nil {
		return nil, err
	}
	return step.Transform(ctx, dc, ec)
}

// NonFittable supplies a no-op Fit. Embed it in steps that only transform.
type NonFittable struct{}

// Fit does nothing.
func (NonFittable) Fit(context.Context, *data.Container, *ExecutionContext) error {
	return nil
}

// NonTransformable supplies a pass-through Transform. Embed it in steps
// that only fit.
type NonTransformable struct{}

// Transform returns the container unchanged.
func (NonTransformable) Transform(_ context.Context, dc *data.Container, _ *ExecutionContext) (*data.Container, error) {
	return dc, nil
}

// TransformFunc adapts a function into a non-fittable Step.
type TransformFunc struct {
	NonFittable
	name string
	fn   func(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error)
}

// NewTransformFunc creates a step from a transform function.
func NewTransformFunc(name string, fn func(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error)) *TransformFunc {
	return &TransformFunc{name: name, fn: fn}
}

// Name returns the step name.
func (t *TransformFunc) Name() string {
	return t.name
}

// Transform invokes the wrapped function.
func (t *TransformFunc) Transform(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error) {
	return t.fn(ctx, dc, ec)
}
