/*
Package pipeline defines the step contract and sequential pipelines for
fit/transform data processing.

A Step exposes Fit and Transform over a data container and an execution
context. Steps that can fit and transform in a single pass additionally
implement FitTransformer; the package-level FitTransform helper upgrades
to it when available and falls back to Fit followed by Transform.

# Quick Start

	p := pipeline.New("preprocess",
		steps.NewDataShuffler(42),
		steps.NewZipData("header_values"),
	)

	ec := pipeline.NewExecutionContext()
	out, err := p.FitTransform(ctx, container, ec)

# Execution Context

The execution context carries run-scoped state: the execution mode
(train or test), a run ID, and a logger.

	ec := pipeline.NewExecutionContext()
	testEC := ec.WithMode(pipeline.ModeTest)

Mode-sensitive steps such as TrainOnlyWrapper and EpochRepeater consult
the context to decide what to run.

# Composition

A Pipeline is itself a Step, so pipelines nest:

	inner := pipeline.New("model", fitStep)
	outer := pipeline.New("run", shuffler, inner)

# Monitoring

Configure callbacks and Prometheus metrics through Config:

	p := pipeline.NewWithConfig(pipeline.Config{
		Name: "training",
		OnStepComplete: func(res pipeline.StepResult) {
			log.Printf("%s took %v", res.StepName, res.Duration)
		},
		Metrics: metrics.DefaultRegistry,
	}, stepA, stepB)

Stats() returns cumulative execution statistics.
*/
package pipeline
