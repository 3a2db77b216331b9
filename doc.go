/*
Package neuraxle provides a Go library for fit/transform data pipelines
with data shuffling, epoch repetition, data zipping, and checkpointing.

Pipeline Core (pkg/pipeline, pkg/data):
  - pipeline: Step contract, execution contexts, sequential pipelines
  - data: Data containers and n-dimensional float64 arrays

Data Steps (pkg/steps):
  - DataShuffler: Seeded lockstep shuffling of inputs and outputs
  - EpochRepeater: Repeated fitting of a wrapped step
  - ZipData: Merging auxiliary data sources along the last axis
  - TrainOnlyWrapper / TestOnlyWrapper: Execution-mode gating

Training (pkg/training):
  - Trainer: Epoch-based fitting with per-epoch shuffling
  - RetrainScheduler: Cron and interval-based retraining

Persistence (pkg/checkpoint):
  - MemoryStore / RedisStore: Container snapshot storage
  - Saver: Pass-through checkpointing step

Example usage:

	import (
		"github.com/knowater521/Neuraxle/pkg/pipeline"
		"github.com/knowater521/Neuraxle/pkg/steps"
	)

	p := steps.NewTrainShuffled(model, 42)
	ec := pipeline.NewExecutionContext()

	if err := p.Fit(ctx, container, ec); err != nil {
		log.Fatal(err)
	}
*/
package neuraxle
