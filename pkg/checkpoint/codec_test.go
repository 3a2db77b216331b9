package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowater521/Neuraxle/pkg/data"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	matrix, err := data.Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	dc := data.New(
		[]any{matrix, 2.5, "label-a"},
		[]any{data.Vector(1), data.Vector(0), data.Vector(1)},
	)
	dc.AddSub("aux", data.New([]any{data.Vector(9, 9)}, nil))

	encoded, err := Encode(dc)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, dc.SummaryID, decoded.SummaryID)
	assert.Equal(t, dc.IDs, decoded.IDs)
	assert.True(t, matrix.Equal(decoded.DataInputs[0].(*data.NDArray)))
	assert.Equal(t, 2.5, decoded.DataInputs[1])
	assert.Equal(t, "label-a", decoded.DataInputs[2])
	require.Len(t, decoded.ExpectedOutputs, 3)

	sub, ok := decoded.Sub("aux")
	require.True(t, ok)
	assert.True(t, data.Vector(9, 9).Equal(sub.DataInputs[0].(*data.NDArray)))
}

func TestEncodeNilExpectedOutputs(t *testing.T) {
	dc := data.New([]any{1.0}, nil)

	encoded, err := Encode(dc)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.ExpectedOutputs)
}

func TestEncodeUnsupportedValue(t *testing.T) {
	dc := data.New([]any{struct{}{}}, nil)

	_, err := Encode(dc)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"summary_id":"x","data_inputs":[{"kind":"complex128","value":"1"}]}`))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{`))
	assert.Error(t, err)
}
