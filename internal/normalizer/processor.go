package normalizer

import (
	"errors"
	"fmt"
)

// ErrNotEnvelope is returned when a response body is not a JSON object.
var ErrNotEnvelope = errors.New("response body is not an envelope object")

// Processor turns raw CMS response bodies into normalized nodes.
type Processor struct{}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process decodes a response body and normalizes its top-level data field.
// A body without data normalizes to Null.
func (p *Processor) Process(body []byte) (Node, error) {
	doc, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	envelope, ok := doc.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotEnvelope, Kind(doc))
	}

	data, _ := envelope.Get(DataKey)

	return Normalize(data), nil
}

// Kind names the variant of n, for error messages and logs.
func Kind(n Node) string {
	switch n.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Seq:
		return "array"
	case *Object:
		return "object"
	}

	return "unknown"
}
