package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

func matrixContainer(t *testing.T, samples, rows, cols int) *data.Container {
	t.Helper()
	inputs := make([]any, samples)
	for i := range inputs {
		values := make([][]float64, rows)
		for r := range values {
			values[r] = make([]float64, cols)
			for c := range values[r] {
				values[r][c] = float64(i*100 + r*cols + c)
			}
		}
		m, err := data.Matrix(values)
		require.NoError(t, err)
		inputs[i] = m
	}
	return data.New(inputs, nil)
}

func vectorContainer(samples, width int) *data.Container {
	inputs := make([]any, samples)
	for i := range inputs {
		values := make([]float64, width)
		for j := range values {
			values[j] = float64(-(i + 1))
		}
		inputs[i] = data.Vector(values...)
	}
	return data.New(inputs, nil)
}

func at(t *testing.T, arr *data.NDArray, index ...int) float64 {
	t.Helper()
	v, err := arr.At(index...)
	require.NoError(t, err)
	return v
}

func TestZipDataBroadcastsVectorAcrossRows(t *testing.T) {
	dc := matrixContainer(t, 3, 4, 2)
	dc.AddSub("header_values", vectorContainer(3, 1))

	out, err := NewZipData("header_values").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)

	for i, v := range out.DataInputs {
		arr := v.(*data.NDArray)
		require.Equal(t, []int{4, 3}, arr.Shape(), "sample %d", i)
		// Every row gains the broadcast header value as its last column.
		for row := 0; row < 4; row++ {
			assert.Equal(t, float64(-(i+1)), at(t, arr, row, 2))
		}
	}
}

func TestZipDataConcatenatesMatchingVectors(t *testing.T) {
	dc := vectorContainer(2, 3)
	dc.AddSub("extra", vectorContainer(2, 2))

	out, err := NewZipData("extra").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)

	for _, v := range out.DataInputs {
		assert.Equal(t, []int{5}, v.(*data.NDArray).Shape())
	}
}

func TestZipDataFloatSamples(t *testing.T) {
	dc := data.New([]any{1.0, 2.0}, nil)
	dc.AddSub("scalars", data.New([]any{10.0, 20.0}, nil))

	out, err := NewZipData("scalars").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)

	first := out.DataInputs[0].(*data.NDArray)
	require.Equal(t, []int{2}, first.Shape())
	assert.Equal(t, 1.0, at(t, first, 0))
	assert.Equal(t, 10.0, at(t, first, 1))
}

func TestZipDataIgnoresMissingSources(t *testing.T) {
	dc := matrixContainer(t, 2, 2, 2)
	original := append([]any(nil), dc.DataInputs...)

	out, err := NewZipData("absent").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.Equal(t, original, out.DataInputs)
}

func TestZipDataMergesMultipleSourcesInOrder(t *testing.T) {
	dc := matrixContainer(t, 2, 3, 2)
	dc.AddSub("first", vectorContainer(2, 1))
	dc.AddSub("second", vectorContainer(2, 1))

	out, err := NewZipData("second", "first").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)

	// Registration order wins regardless of the argument order.
	for _, v := range out.DataInputs {
		assert.Equal(t, []int{3, 4}, v.(*data.NDArray).Shape())
	}
}

func TestZipDataExpectedOutputs(t *testing.T) {
	dc := data.New(
		[]any{data.Vector(1, 2), data.Vector(3, 4)},
		[]any{data.Vector(10), data.Vector(20)},
	)
	dc.AddSub("aux", data.New(
		[]any{data.Vector(5), data.Vector(6)},
		[]any{data.Vector(50), data.Vector(60)},
	))

	out, err := NewZipData("aux").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, out.DataInputs[0].(*data.NDArray).Shape())
	assert.Equal(t, []int{2}, out.ExpectedOutputs[0].(*data.NDArray).Shape())
}

func TestZipDataOneSidedExpectedOutputs(t *testing.T) {
	dc := data.New([]any{data.Vector(1)}, []any{data.Vector(10)})
	dc.AddSub("aux", data.New([]any{data.Vector(2)}, nil))

	_, err := NewZipData("aux").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	assert.ErrorIs(t, err, ErrNotZippable)
}

func TestZipDataUnsupportedSampleType(t *testing.T) {
	dc := data.New([]any{"not-a-tensor"}, nil)
	dc.AddSub("aux", data.New([]any{data.Vector(1)}, nil))

	_, err := NewZipData("aux").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	assert.ErrorIs(t, err, ErrNotZippable)
}

func TestZipDataSampleCountMismatch(t *testing.T) {
	dc := matrixContainer(t, 3, 2, 2)
	dc.AddSub("aux", vectorContainer(2, 1))

	_, err := NewZipData("aux").Transform(context.Background(), dc, pipeline.NewExecutionContext())
	assert.ErrorIs(t, err, data.ErrLengthMismatch)
}

func TestZipDataIsNonFittable(t *testing.T) {
	dc := matrixContainer(t, 2, 2, 2)
	require.NoError(t, NewZipData().Fit(context.Background(), dc, pipeline.NewExecutionContext()))
}
