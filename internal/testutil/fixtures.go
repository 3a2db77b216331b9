package testutil

import (
	"strconv"

	"github.com/knowater521/Neuraxle/pkg/data"
)

// FloatContainer builds a container with n float64 samples where sample
// i has data input float64(i) and expected output float64(i * 10).
func FloatContainer(n int) *data.Container {
	inputs := make([]any, n)
	outputs := make([]any, n)
	for i := 0; i < n; i++ {
		inputs[i] = float64(i)
		outputs[i] = float64(i * 10)
	}
	return data.New(inputs, outputs)
}

// StringContainer builds a container with n string samples and no
// expected outputs.
func StringContainer(n int) *data.Container {
	inputs := make([]any, n)
	for i := 0; i < n; i++ {
		inputs[i] = "sample-" + strconv.Itoa(i)
	}
	return data.New(inputs, nil)
}

// VectorContainer builds a container whose samples are rank-1 NDArrays
// of the given width. Sample i holds [i, i+1, ..., i+width-1] as data
// input and [i] as expected output.
func VectorContainer(n, width int) *data.Container {
	inputs := make([]any, n)
	outputs := make([]any, n)
	for i := 0; i < n; i++ {
		values := make([]float64, width)
		for j := range values {
			values[j] = float64(i + j)
		}
		inputs[i] = data.Vector(values...)
		outputs[i] = data.Vector(float64(i))
	}
	return data.New(inputs, outputs)
}
