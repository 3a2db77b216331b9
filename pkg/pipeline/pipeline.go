package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/metrics"
)

// StepResult describes one step execution inside a pipeline run.
type StepResult struct {
	// StepName is the name of the executed step.
	StepName string

	// Operation is the contract operation that ran: "fit", "transform"
	// or "fit_transform".
	Operation string

	// Error is any error the step returned.
	Error error

	// Duration is how long the step took.
	Duration time.Duration
}

// Stats holds cumulative pipeline execution statistics.
type Stats struct {
	FitRuns          int64
	TransformRuns    int64
	FitTransformRuns int64
	Failures         int64
	TotalDuration    time.Duration
	StepDurations    map[string]time.Duration
	LastRunAt        time.Time
}

// Config holds pipeline configuration options.
type Config struct {
	// Name identifies the pipeline. Defaults to "pipeline".
	Name string

	// OnStepStart is called before each step executes.
	OnStepStart func(stepName string)

	// OnStepComplete is called after each step executes.
	OnStepComplete func(result StepResult)

	// OnError is called when a step fails.
	OnError func(stepName string, err error)

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry
}

// Pipeline is a named sequential composition of steps. It implements
// Step and FitTransformer, so pipelines nest inside other pipelines.
//
// Fitting a pipeline fit-transforms every step except the last, which is
// only fitted: each step must see the data as transformed by the steps
// before it.
type Pipeline struct {
	name   string
	config Config

	mu    sync.RWMutex
	steps []Step
	stats Stats
}

// New creates a pipeline from the given steps.
func New(name string, steps ...Step) *Pipeline {
	return NewWithConfig(Config{Name: name}, steps...)
}

// NewWithConfig creates a pipeline with the given configuration.
func NewWithConfig(config Config, steps ...Step) *Pipeline {
	name := config.Name
	if name == "" {
		name = "pipeline"
	}

	p := &Pipeline{
		name:   name,
		config: config,
		stats:  Stats{StepDurations: make(map[string]time.Duration)},
	}
	for _, s := range steps {
		p.AddStep(s)
	}
	return p
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// AddStep appends a step to the pipeline. Nil steps are ignored.
func (p *Pipeline) AddStep(step Step) *Pipeline {
	if step == nil {
		return p
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps = append(p.steps, step)
	return p
}

// Steps returns the pipeline's steps in execution order.
func (p *Pipeline) Steps() []Step {
	p.mu.RLock()
	defer p.mu.RUnlock()
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Fit fits every step in order. Each step except the last is
// fit-transformed so the next step sees its output; the last step is
// only fitted.
func (p *Pipeline) Fit(ctx context.Context, dc *data.Container, ec *ExecutionContext) error {
	steps := p.Steps()
	if len(steps) == 0 {
		return ErrEmptyPipeline
	}

	start := time.Now()
	var err error
	for i, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		if i == len(steps)-1 {
			err = p.runStep(step, "fit", func() (ferr error) {
				ferr = step.Fit(ctx, dc, ec)
				return
			})
		} else {
			err = p.runStep(step, "fit_transform", func() (ferr error) {
				dc, ferr = FitTransform(ctx, step, dc, ec)
				return
			})
		}
		if err != nil {
			err = fmt.Errorf("pipeline %s: step %s: %w", p.name, step.Name(), err)
			break
		}
	}

	p.recordRun("fit", time.Since(start), err)
	return err
}

// Transform runs every step's Transform in order.
func (p *Pipeline) Transform(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error) {
	steps := p.Steps()
	if len(steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	start := time.Now()
	var err error
	for _, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		err = p.runStep(step, "transform", func() (ferr error) {
			dc, ferr = step.Transform(ctx, dc, ec)
			return
		})
		if err != nil {
			err = fmt.Errorf("pipeline %s: step %s: %w", p.name, step.Name(), err)
			break
		}
	}

	p.recordRun("transform", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// FitTransform fits and transforms every step in order in one pass.
func (p *Pipeline) FitTransform(ctx context.Context, dc *data.Container, ec *ExecutionContext) (*data.Container, error) {
	steps := p.Steps()
	if len(steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	start := time.Now()
	var err error
	for _, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		err = p.runStep(step, "fit_transform", func() (ferr error) {
			dc, ferr = FitTransform(ctx, step, dc, ec)
			return
		})
		if err != nil {
			err = fmt.Errorf("pipeline %s: step %s: %w", p.name, step.Name(), err)
			break
		}
	}

	p.recordRun("fit_transform", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// Stats returns a copy of the cumulative execution statistics.
func (p *Pipeline) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	statsCopy := p.stats
	statsCopy.StepDurations = make(map[string]time.Duration, len(p.stats.StepDurations))
	for k, v := range p.stats.StepDurations {
		statsCopy.StepDurations[k] = v
	}
	return statsCopy
}

// runStep executes one step operation with callbacks, stats and metrics.
func (p *Pipeline) runStep(step Step, operation string, fn func() error) error {
	if p.config.OnStepStart != nil {
		p.config.OnStepStart(step.Name())
	}

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	p.mu.Lock()
	p.stats.StepDurations[step.Name()] += duration
	p.mu.Unlock()

	p.observeStep(step.Name(), operation, duration, err)

	if err != nil && p.config.OnError != nil {
		p.config.OnError(step.Name(), err)
	}
	if p.config.OnStepComplete != nil {
		p.config.OnStepComplete(StepResult{
			StepName:  step.Name(),
			Operation: operation,
			Error:     err,
			Duration:  duration,
		})
	}

	return err
}

// recordRun updates run-level stats and metrics.
func (p *Pipeline) recordRun(operation string, duration time.Duration, err error) {
	p.mu.Lock()
	switch operation {
	case "fit":
		p.stats.FitRuns++
	case "transform":
		p.stats.TransformRuns++
	case "fit_transform":
		p.stats.FitTransformRuns++
	}
	if err != nil {
		p.stats.Failures++
	}
	p.stats.TotalDuration += duration
	p.stats.LastRunAt = time.Now()
	p.mu.Unlock()

	p.observeRun(operation, err)
}
