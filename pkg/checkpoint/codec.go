package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/knowater521/Neuraxle/pkg/data"
)

// ErrUnsupportedValue indicates a sample value the codec cannot encode.
var ErrUnsupportedValue = errors.New("unsupported sample value type")

const (
	kindNDArray = "ndarray"
	kindFloat64 = "float64"
	kindString  = "string"
)

type valueDoc struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

type containerDoc struct {
	SummaryID       string         `json:"summary_id"`
	IDs             []string       `json:"ids,omitempty"`
	DataInputs      []valueDoc     `json:"data_inputs"`
	ExpectedOutputs []valueDoc     `json:"expected_outputs,omitempty"`
	SubContainers   []subDoc       `json:"sub_containers,omitempty"`
}

type subDoc struct {
	Name      string        `json:"name"`
	Container *containerDoc `json:"container"`
}

// Encode serializes a container to JSON. Sample values must be
// *data.NDArray, float64 or string.
func Encode(dc *data.Container) ([]byte, error) {
	doc, err := encodeContainer(dc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Decode deserializes a container encoded by Encode.
func Decode(b []byte) (*data.Container, error) {
	var doc containerDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return decodeContainer(&doc)
}

func encodeContainer(dc *data.Container) (*containerDoc, error) {
	doc := &containerDoc{
		SummaryID: dc.SummaryID,
		IDs:       dc.IDs,
	}

	var err error
	if doc.DataInputs, err = encodeValues(dc.DataInputs); err != nil {
		return nil, fmt.Errorf("data inputs: %w", err)
	}
	if doc.ExpectedOutputs, err = encodeValues(dc.ExpectedOutputs); err != nil {
		return nil, fmt.Errorf("expected outputs: %w", err)
	}

	for _, sub := range dc.Subs() {
		subContainer, err := encodeContainer(sub.Container)
		if err != nil {
			return nil, fmt.Errorf("sub-container %q: %w", sub.Name, err)
		}
		doc.SubContainers = append(doc.SubContainers, subDoc{
			Name:      sub.Name,
			Container: subContainer,
		})
	}

	return doc, nil
}

func decodeContainer(doc *containerDoc) (*data.Container, error) {
	dc := &data.Container{
		SummaryID: doc.SummaryID,
		IDs:       doc.IDs,
	}

	var err error
	if dc.DataInputs, err = decodeValues(doc.DataInputs); err != nil {
		return nil, fmt.Errorf("data inputs: %w", err)
	}
	if dc.ExpectedOutputs, err = decodeValues(doc.ExpectedOutputs); err != nil {
		return nil, fmt.Errorf("expected outputs: %w", err)
	}

	for _, sub := range doc.SubContainers {
		subContainer, err := decodeContainer(sub.Container)
		if err != nil {
			return nil, fmt.Errorf("sub-container %q: %w", sub.Name, err)
		}
		dc.AddSub(sub.Name, subContainer)
	}

	return dc, nil
}

func encodeValues(values []any) ([]valueDoc, error) {
	if values == nil {
		return nil, nil
	}

	docs := make([]valueDoc, len(values))
	for i, value := range values {
		var kind string
		switch value.(type) {
		case *data.NDArray:
			kind = kindNDArray
		case float64:
			kind = kindFloat64
		case string:
			kind = kindString
		default:
			return nil, fmt.Errorf("%w: sample %d is %T", ErrUnsupportedValue, i, value)
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		docs[i] = valueDoc{Kind: kind, Value: raw}
	}
	return docs, nil
}

func decodeValues(docs []valueDoc) ([]any, error) {
	if docs == nil {
		return nil, nil
	}

	values := make([]any, len(docs))
	for i, doc := range docs {
		switch doc.Kind {
		case kindNDArray:
			arr := &data.NDArray{}
			if err := json.Unmarshal(doc.Value, arr); err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			values[i] = arr
		case kindFloat64:
			var f float64
			if err := json.Unmarshal(doc.Value, &f); err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			values[i] = f
		case kindString:
			var s string
			if err := json.Unmarshal(doc.Value, &s); err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			values[i] = s
		default:
			return nil, fmt.Errorf("%w: sample %d has kind %q", ErrUnsupportedValue, i, doc.Kind)
		}
	}
	return values, nil
}
