package steps

import (
	"context"
	"math/rand"
	"sync"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// DefaultShuffleSeed is used when no seed is configured.
const DefaultShuffleSeed int64 = 42

// ShufflerConfig holds DataShuffler configuration options.
type ShufflerConfig struct {
	// Seed for the shuffle permutation. Zero means DefaultShuffleSeed.
	Seed int64

	// FixedSeed disables the per-shuffle seed increment, so every
	// shuffle uses the same permutation.
	FixedSeed bool
}

// DataShuffler shuffles data inputs, expected outputs and sample IDs in
// lockstep using a single seeded permutation. Unless FixedSeed is set,
// the seed is incremented before each shuffle so successive epochs see
// different orders while staying reproducible.
//
// You almost always want to wrap this step in a TrainOnlyWrapper so test
// data keeps its order.
type DataShuffler struct {
	pipeline.NonFittable

	mu        sync.Mutex
	seed      int64
	fixedSeed bool
}

// NewDataShuffler creates a shuffler with the given seed and the seed
// increment enabled. A zero seed means DefaultShuffleSeed.
func NewDataShuffler(seed int64) *DataShuffler {
	return NewDataShufflerWithConfig(ShufflerConfig{Seed: seed})
}

// NewDataShufflerWithConfig creates a shuffler with the given configuration.
func NewDataShufflerWithConfig(config ShufflerConfig) *DataShuffler {
	seed := config.Seed
	if seed == 0 {
		seed = DefaultShuffleSeed
	}
	return &DataShuffler{seed: seed, fixedSeed: config.FixedSeed}
}

// Name returns the step name.
func (s *DataShuffler) Name() string {
	return "data-shuffler"
}

// Seed returns the seed the next shuffle will derive from.
func (s *DataShuffler) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Transform shuffles the container in place. Data inputs, expected
// outputs and IDs are permuted with the same permutation so pairs stay
// aligned.
func (s *DataShuffler) Transform(_ context.Context, dc *data.Container, _ *pipeline.ExecutionContext) (*data.Container, error) {
	if err := dc.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.fixedSeed {
		s.seed++
	}
	seed := s.seed
	s.mu.Unlock()

	perm := rand.New(rand.NewSource(seed)).Perm(dc.Len())

	dc.DataInputs = permute(dc.DataInputs, perm)
	if dc.ExpectedOutputs != nil {
		dc.ExpectedOutputs = permute(dc.ExpectedOutputs, perm)
	}
	if dc.IDs != nil {
		dc.IDs = permuteStrings(dc.IDs, perm)
	}

	return dc, nil
}

func permute(values []any, perm []int) []any {
	out := make([]any, len(values))
	for i, j := range perm {
		out[i] = values[j]
	}
	return out
}

func permuteStrings(values []string, perm []int) []string {
	out := make([]string, len(values))
	for i, j := range perm {
		out[i] = values[j]
	}
	return out
}
