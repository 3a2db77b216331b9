package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowater521/Neuraxle/internal/testutil"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

func TestTrainOnlyWrapperRunsInTrainMode(t *testing.T) {
	inner := &recordingStep{}
	wrapper := NewTrainOnlyWrapper(inner)
	ec := pipeline.NewExecutionContext()

	require.NoError(t, wrapper.Fit(context.Background(), testutil.FloatContainer(3), ec))
	_, err := wrapper.Transform(context.Background(), testutil.FloatContainer(3), ec)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.fits)
	assert.Equal(t, 1, inner.transforms)
}

func TestTrainOnlyWrapperPassesThroughInTestMode(t *testing.T) {
	inner := &recordingStep{}
	wrapper := NewTrainOnlyWrapper(inner)
	ec := pipeline.NewExecutionContext().WithMode(pipeline.ModeTest)
	dc := testutil.FloatContainer(3)

	require.NoError(t, wrapper.Fit(context.Background(), dc, ec))
	out, err := wrapper.Transform(context.Background(), dc, ec)
	require.NoError(t, err)

	assert.Zero(t, inner.fits)
	assert.Zero(t, inner.transforms)
	assert.Same(t, dc, out, "test mode must pass the container through untouched")
}

func TestTestOnlyWrapperRunsInTestMode(t *testing.T) {
	inner := &recordingStep{}
	wrapper := NewTestOnlyWrapper(inner)
	ec := pipeline.NewExecutionContext().WithMode(pipeline.ModeTest)

	_, err := wrapper.Transform(context.Background(), testutil.FloatContainer(3), ec)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.transforms)
}

func TestTestOnlyWrapperPassesThroughInTrainMode(t *testing.T) {
	inner := &recordingStep{}
	wrapper := NewTestOnlyWrapper(inner)
	ec := pipeline.NewExecutionContext()
	dc := testutil.FloatContainer(3)

	out, err := wrapper.Transform(context.Background(), dc, ec)
	require.NoError(t, err)
	assert.Zero(t, inner.transforms)
	assert.Same(t, dc, out)
}

func TestModeWrapperFitTransform(t *testing.T) {
	inner := &upgradedStep{}
	wrapper := NewTrainOnlyWrapper(inner)

	_, err := wrapper.FitTransform(context.Background(), testutil.FloatContainer(3), pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.fitTransforms)

	_, err = wrapper.FitTransform(context.Background(), testutil.FloatContainer(3), pipeline.NewExecutionContext().WithMode(pipeline.ModeTest))
	require.NoError(t, err)
	assert.Equal(t, 1, inner.fitTransforms, "test mode must skip the wrapped step")
}

func TestModeWrapperNames(t *testing.T) {
	assert.Equal(t, "train-only[recording]", NewTrainOnlyWrapper(&recordingStep{}).Name())
	assert.Equal(t, "test-only[recording]", NewTestOnlyWrapper(&recordingStep{}).Name())
}

func TestModeWrappersPanicOnNilStep(t *testing.T) {
	assert.Panics(t, func() { NewTrainOnlyWrapper(nil) })
	assert.Panics(t, func() { NewTestOnlyWrapper(nil) })
}
