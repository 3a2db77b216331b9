package steps

import (
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// NewTrainShuffled builds a two-stage pipeline that shuffles training
// data before the wrapped step: a train-only DataShuffler followed by
// the wrapped step. In test mode data reaches the wrapped step in its
// original order.
func NewTrainShuffled(wrapped pipeline.Step, seed int64) *pipeline.Pipeline {
	return pipeline.New("train-shuffled",
		NewTrainOnlyWrapper(NewDataShuffler(seed)),
		wrapped,
	)
}
