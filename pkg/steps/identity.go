package steps

import (
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// Identity is a step that neither fits nor changes the data. Useful as a
// placeholder while wiring pipelines and as a default wrapped step.
type Identity struct {
	pipeline.NonFittable
	pipeline.NonTransformable
}

// NewIdentity creates an identity step.
func NewIdentity() *Identity {
	return &Identity{}
}

// Name returns the step name.
func (Identity) Name() string {
	return "identity"
}
