package data

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Common data errors.
var (
	// ErrLengthMismatch indicates paired sequences have different lengths.
	ErrLengthMismatch = errors.New("data inputs and expected outputs lengths differ")

	// ErrShapeMismatch indicates incompatible array shapes.
	ErrShapeMismatch = errors.New("incompatible array shapes")
)

// SubContainer is a named auxiliary data source attached to a Container.
type SubContainer struct {
	Name      string
	Container *Container
}

// Container carries paired data inputs and expected outputs through a
// pipeline run. ExpectedOutputs may be nil for transform-only data.
//
// Steps are free to mutate the container they receive or return a copy;
// callers that need to keep the original should Copy it first.
type Container struct {
	DataInputs      []any
	ExpectedOutputs []any

	// IDs identifies each sample. Defaults to the sample index.
	IDs []string

	// SummaryID identifies this container as a whole, e.g. as a
	// checkpoint key.
	SummaryID string

	subs []SubContainer
}

// New creates a container with paired data inputs and expected outputs.
// Sample IDs default to the sample index and the summary ID is a fresh
// UUID. expectedOutputs may be nil.
func New(dataInputs, expectedOutputs []any) *Container {
	ids := make([]string, len(dataInputs))
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}

	return &Container{
		DataInputs:      dataInputs,
		ExpectedOutputs: expectedOutputs,
		IDs:             ids,
		SummaryID:       uuid.NewString(),
	}
}

// Len returns the number of samples.
func (c *Container) Len() int {
	return len(c.DataInputs)
}

// Validate checks that paired sequences agree in length.
func (c *Container) Validate() error {
	if c.ExpectedOutputs != nil && len(c.ExpectedOutputs) != len(c.DataInputs) {
		return fmt.Errorf("%w: %d data inputs, %d expected outputs",
			ErrLengthMismatch, len(c.DataInputs), len(c.ExpectedOutputs))
	}
	if c.IDs != nil && len(c.IDs) != len(c.DataInputs) {
		return fmt.Errorf("%w: %d data inputs, %d ids",
			ErrLengthMismatch, len(c.DataInputs), len(c.IDs))
	}
	return nil
}

// Copy returns a container with fresh top-level slices and recursively
// copied sub-containers. Sample values themselves are shared.
func (c *Container) Copy() *Container {
	cp := &Container{SummaryID: c.SummaryID}

	if c.DataInputs != nil {
		cp.DataInputs = make([]any, len(c.DataInputs))
		copy(cp.DataInputs, c.DataInputs)
	}
	if c.ExpectedOutputs != nil {
		cp.ExpectedOutputs = make([]any, len(c.ExpectedOutputs))
		copy(cp.ExpectedOutputs, c.ExpectedOutputs)
	}
	if c.IDs != nil {
		cp.IDs = make([]string, len(c.IDs))
		copy(cp.IDs, c.IDs)
	}
	for _, sub := range c.subs {
		cp.subs = append(cp.subs, SubContainer{
			Name:      sub.Name,
			Container: sub.Container.Copy(),
		})
	}

	return cp
}

// AddSub attaches a named auxiliary data source. Names are not required
// to be unique; lookups return the first match.
func (c *Container) AddSub(name string, sub *Container) *Container {
	c.subs = append(c.subs, SubContainer{Name: name, Container: sub})
	return c
}

// Sub returns the first sub-container registered under name.
func (c *Container) Sub(name string) (*Container, bool) {
	for _, sub := range c.subs {
		if sub.Name == name {
			return sub.Container, true
		}
	}
	return nil, false
}

// Subs returns the attached sub-containers in registration order.
func (c *Container) Subs() []SubContainer {
	subs := make([]SubContainer, len(c.subs))
	copy(subs, c.subs)
	return subs
}
