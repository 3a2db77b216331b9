/*
Package steps provides data-handling pipeline steps: shuffling, epoch
repetition, data zipping, and execution-mode wrappers.

# Data Shuffling

DataShuffler shuffles data inputs and expected outputs in lockstep with a
seeded permutation. You usually want it active only while training:

	p := pipeline.New("train",
		steps.NewTrainOnlyWrapper(steps.NewDataShuffler(42)),
		model,
	)

NewTrainShuffled builds exactly that composition.

# Epoch Repetition

EpochRepeater repeats a wrapped step's fit for a number of epochs:

	repeater := steps.NewEpochRepeater(model, 10)
	err := repeater.Fit(ctx, container, ec)

In test mode the repetition collapses to a single pass unless
RepeatInTestMode is set.

# Zipping Data Sources

ZipData merges named sub-containers into the primary container by
broadcasting each auxiliary value and concatenating it along the last
axis of the matching primary value:

	frames.AddSub("header_values", headers)
	p := pipeline.New("merge", steps.NewZipData("header_values"))
	out, err := p.Transform(ctx, frames, ec)
*/
package steps
