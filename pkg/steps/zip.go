package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// ErrNotZippable indicates a sample value that ZipData cannot merge.
var ErrNotZippable = errors.New("value cannot be zipped")

// ZipData merges named sub-containers into the primary container. For
// each configured source, every auxiliary sample value is broadcast to
// the matching primary value and concatenated along its last axis; the
// same merge is applied to expected outputs. Sample values must be
// *data.NDArray or float64.
//
// Source names without a matching sub-container are ignored, so the same
// step can run over containers with varying auxiliary data.
type ZipData struct {
	pipeline.NonFittable

	sources []string
}

// NewZipData creates a zipping step for the given sub-container names.
func NewZipData(sources ...string) *ZipData {
	return &ZipData{sources: sources}
}

// Name returns the step name.
func (z *ZipData) Name() string {
	return "zip-data"
}

// Transform merges every configured sub-container into the primary
// container, in sub-container registration order.
func (z *ZipData) Transform(_ context.Context, dc *data.Container, _ *pipeline.ExecutionContext) (*data.Container, error) {
	for _, sub := range dc.Subs() {
		if !z.wants(sub.Name) {
			continue
		}
		if err := z.zipContainer(dc, sub.Container); err != nil {
			return nil, fmt.Errorf("zip %q: %w", sub.Name, err)
		}
	}
	return dc, nil
}

func (z *ZipData) wants(name string) bool {
	for _, source := range z.sources {
		if source == name {
			return true
		}
	}
	return false
}

// zipContainer merges src into dst sample by sample.
func (z *ZipData) zipContainer(dst, src *data.Container) error {
	zipped, err := zipValues(dst.DataInputs, src.DataInputs)
	if err != nil {
		return fmt.Errorf("data inputs: %w", err)
	}
	dst.DataInputs = zipped

	switch {
	case dst.ExpectedOutputs == nil && src.ExpectedOutputs == nil:
		// Nothing to merge.
	case dst.ExpectedOutputs == nil || src.ExpectedOutputs == nil:
		return fmt.Errorf("%w: expected outputs present on only one container", ErrNotZippable)
	default:
		zipped, err = zipValues(dst.ExpectedOutputs, src.ExpectedOutputs)
		if err != nil {
			return fmt.Errorf("expected outputs: %w", err)
		}
		dst.ExpectedOutputs = zipped
	}

	return nil
}

func zipValues(primary, auxiliary []any) ([]any, error) {
	if len(primary) != len(auxiliary) {
		return nil, fmt.Errorf("%w: %d primary samples, %d auxiliary samples",
			data.ErrLengthMismatch, len(primary), len(auxiliary))
	}

	out := make([]any, len(primary))
	for i := range primary {
		a, err := toNDArray(primary[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		b, err := toNDArray(auxiliary[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		zipped, err := data.ZipLast(a, b)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = zipped
	}
	return out, nil
}

func toNDArray(value any) (*data.NDArray, error) {
	switch v := value.(type) {
	case *data.NDArray:
		return v, nil
	case float64:
		return data.Vector(v), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrNotZippable, value)
	}
}
