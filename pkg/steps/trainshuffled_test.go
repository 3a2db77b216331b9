package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowater521/Neuraxle/internal/testutil"
	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// orderCapture records the order in which sample values reach it.
type orderCapture struct {
	pipeline.NonFittable

	seen []any
}

func (c *orderCapture) Name() string { return "order-capture" }

func (c *orderCapture) Transform(_ context.Context, dc *data.Container, _ *pipeline.ExecutionContext) (*data.Container, error) {
	c.seen = append([]any(nil), dc.DataInputs...)
	return dc, nil
}

func TestTrainShuffledShufflesInTrainMode(t *testing.T) {
	capture := &orderCapture{}
	p := NewTrainShuffled(capture, 42)
	dc := testutil.FloatContainer(50)
	original := append([]any(nil), dc.DataInputs...)

	_, err := p.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.NotEqual(t, original, capture.seen, "training data should arrive shuffled")
	assert.ElementsMatch(t, original, capture.seen)
}

func TestTrainShuffledPreservesOrderInTestMode(t *testing.T) {
	capture := &orderCapture{}
	p := NewTrainShuffled(capture, 42)
	dc := testutil.FloatContainer(50)
	original := append([]any(nil), dc.DataInputs...)
	ec := pipeline.NewExecutionContext().WithMode(pipeline.ModeTest)

	_, err := p.Transform(context.Background(), dc, ec)
	require.NoError(t, err)
	assert.Equal(t, original, capture.seen)
}

func TestTrainShuffledName(t *testing.T) {
	p := NewTrainShuffled(NewIdentity(), 42)
	assert.Equal(t, "train-shuffled", p.Name())
	require.Len(t, p.Steps(), 2)
	assert.Equal(t, "train-only[data-shuffler]", p.Steps()[0].Name())
}
