package data

import (
	"encoding/json"
	"fmt"
)

// NDArray is an n-dimensional float64 array in row-major order. A rank-0
// array holds a single scalar value.
type NDArray struct {
	shape []int
	data  []float64
}

// NewNDArray creates an array with the given shape backed by values.
// len(values) must equal the product of the shape dimensions.
func NewNDArray(shape []int, values []float64) (*NDArray, error) {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, dim)
		}
		size *= dim
	}
	if size != len(values) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d",
			ErrShapeMismatch, shape, size, len(values))
	}

	a := &NDArray{
		shape: make([]int, len(shape)),
		data:  make([]float64, len(values)),
	}
	copy(a.shape, shape)
	copy(a.data, values)
	return a, nil
}

// Scalar creates a rank-0 array holding v.
func Scalar(v float64) *NDArray {
	return &NDArray{data: []float64{v}}
}

// Vector creates a rank-1 array from values.
func Vector(values ...float64) *NDArray {
	a := &NDArray{
		shape: []int{len(values)},
		data:  make([]float64, len(values)),
	}
	copy(a.data, values)
	return a
}

// Matrix creates a rank-2 array from rows. All rows must have equal length.
func Matrix(rows [][]float64) (*NDArray, error) {
	if len(rows) == 0 {
		return &NDArray{shape: []int{0, 0}, data: nil}, nil
	}
	cols := len(rows[0])
	a := &NDArray{
		shape: []int{len(rows), cols},
		data:  make([]float64, 0, len(rows)*cols),
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				ErrShapeMismatch, i, len(row), cols)
		}
		a.data = append(a.data, row...)
	}
	return a, nil
}

// Shape returns a copy of the array's shape.
func (a *NDArray) Shape() []int {
	shape := make([]int, len(a.shape))
	copy(shape, a.shape)
	return shape
}

// Rank returns the number of dimensions.
func (a *NDArray) Rank() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *NDArray) Size() int {
	return len(a.data)
}

// Data returns a copy of the flat row-major values.
func (a *NDArray) Data() []float64 {
	values := make([]float64, len(a.data))
	copy(values, a.data)
	return values
}

// At returns the element at the given multi-index.
func (a *NDArray) At(index ...int) (float64, error) {
	if len(index) != len(a.shape) {
		return 0, fmt.Errorf("%w: index rank %d, array rank %d",
			ErrShapeMismatch, len(index), len(a.shape))
	}
	offset := 0
	for i, dim := range a.shape {
		if index[i] < 0 || index[i] >= dim {
			return 0, fmt.Errorf("index %d out of range for axis %d (size %d)",
				index[i], i, dim)
		}
		offset = offset*dim + index[i]
	}
	return a.data[offset], nil
}

// ExpandDims returns a view-equivalent array with a trailing axis of
// size 1 appended, e.g. shape (n) becomes (n, 1).
func (a *NDArray) ExpandDims() *NDArray {
	shape := make([]int, len(a.shape)+1)
	copy(shape, a.shape)
	shape[len(shape)-1] = 1

	values := make([]float64, len(a.data))
	copy(values, a.data)
	return &NDArray{shape: shape, data: values}
}

// BroadcastTo expands the array to the target shape. Shapes are aligned
// on trailing axes; each source dimension must equal the target dimension
// or be 1.
func (a *NDArray) BroadcastTo(target []int) (*NDArray, error) {
	if len(a.shape) > len(target) {
		return nil, fmt.Errorf("%w: cannot broadcast %v to lower-rank %v",
			ErrShapeMismatch, a.shape, target)
	}

	// Left-pad the source shape with 1s to the target rank.
	src := make([]int, len(target))
	for i := range src {
		src[i] = 1
	}
	copy(src[len(target)-len(a.shape):], a.shape)

	for i := range target {
		if src[i] != target[i] && src[i] != 1 {
			return nil, fmt.Errorf("%w: cannot broadcast %v to %v",
				ErrShapeMismatch, a.shape, target)
		}
	}

	// Row-major strides, zeroed on broadcast axes.
	strides := make([]int, len(src))
	stride := 1
	for i := len(src) - 1; i >= 0; i-- {
		if src[i] == 1 {
			strides[i] = 0
		} else {
			strides[i] = stride
		}
		stride *= src[i]
	}

	size := 1
	for _, dim := range target {
		size *= dim
	}

	out := &NDArray{
		shape: make([]int, len(target)),
		data:  make([]float64, size),
	}
	copy(out.shape, target)

	index := make([]int, len(target))
	for i := 0; i < size; i++ {
		offset := 0
		for axis := range index {
			offset += index[axis] * strides[axis]
		}
		out.data[i] = a.data[offset]

		for axis := len(index) - 1; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < target[axis] {
				break
			}
			index[axis] = 0
		}
	}

	return out, nil
}

// ConcatLast concatenates a and b along the last axis. All other axes
// must agree.
func ConcatLast(a, b *NDArray) (*NDArray, error) {
	if a.Rank() == 0 || b.Rank() == 0 {
		return nil, fmt.Errorf("%w: cannot concatenate rank-0 arrays", ErrShapeMismatch)
	}
	if a.Rank() != b.Rank() {
		return nil, fmt.Errorf("%w: rank %d vs %d", ErrShapeMismatch, a.Rank(), b.Rank())
	}
	last := a.Rank() - 1
	for i := 0; i < last; i++ {
		if a.shape[i] != b.shape[i] {
			return nil, fmt.Errorf("%w: %v vs %v on axis %d",
				ErrShapeMismatch, a.shape, b.shape, i)
		}
	}

	aLast, bLast := a.shape[last], b.shape[last]
	rows := 1
	for _, dim := range a.shape[:last] {
		rows *= dim
	}

	shape := a.Shape()
	shape[last] = aLast + bLast

	out := &NDArray{
		shape: shape,
		data:  make([]float64, 0, rows*(aLast+bLast)),
	}
	for row := 0; row < rows; row++ {
		out.data = append(out.data, a.data[row*aLast:(row+1)*aLast]...)
		out.data = append(out.data, b.data[row*bLast:(row+1)*bLast]...)
	}

	return out, nil
}

// ZipLast merges b into a along the last axis: b is expanded with
// trailing axes until it matches a's rank, broadcast so its leading axes
// match a's, and concatenated after a's last axis.
func ZipLast(a, b *NDArray) (*NDArray, error) {
	if a.Rank() == 0 {
		return nil, fmt.Errorf("%w: primary array must have rank >= 1", ErrShapeMismatch)
	}

	for b.Rank() < a.Rank() {
		b = b.ExpandDims()
	}

	target := a.Shape()
	target[len(target)-1] = b.shape[b.Rank()-1]

	b, err := b.BroadcastTo(target)
	if err != nil {
		return nil, err
	}

	return ConcatLast(a, b)
}

// Equal reports whether a and b have identical shapes and values.
func (a *NDArray) Equal(b *NDArray) bool {
	if b == nil || len(a.shape) != len(b.shape) || len(a.data) != len(b.data) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

type ndarrayJSON struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// MarshalJSON encodes the array as its shape and flat values.
func (a *NDArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(ndarrayJSON{Shape: a.shape, Data: a.data})
}

// UnmarshalJSON decodes an array encoded by MarshalJSON.
func (a *NDArray) UnmarshalJSON(b []byte) error {
	var doc ndarrayJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	decoded, err := NewNDArray(doc.Shape, doc.Data)
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}
