package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
)

// bodyShape is the top-level JSON type of a request body.
type bodyShape int

const (
	shapeEmpty bodyShape = iota
	shapeObject
	shapeArray
	shapeOther
)

var jsonNull = []byte("null")

// shapeOf inspects the first byte of well-formed JSON. An absent body and a
// literal null are both empty.
func shapeOf(data json.RawMessage) bodyShape {
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return shapeEmpty
	}
	switch data[0] {
	case '{':
		return shapeObject
	case '[':
		return shapeArray
	default:
		return shapeOther
	}
}

// decodeCreateBatch turns a creation body into an ordered list of drafts.
// A single object becomes one draft and an array one draft per element. An
// empty body yields an empty list, which the service rejects. Any element
// that cannot be decoded fails the whole batch.
func decodeCreateBatch(data json.RawMessage) ([]*domain.EmployeeDraft, error) {
	switch shapeOf(data) {
	case shapeEmpty:
		return []*domain.EmployeeDraft{}, nil
	case shapeObject:
		d, err := decodeDraft(data)
		if err != nil {
			return nil, err
		}
		return []*domain.EmployeeDraft{d}, nil
	case shapeArray:
		var elements []json.RawMessage
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, domain.NewBadRequestError(domain.MsgInvalidPayload, err)
		}
		drafts := make([]*domain.EmployeeDraft, 0, len(elements))
		for i, el := range elements {
			d, err := decodeDraft(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			drafts = append(drafts, d)
		}
		return drafts, nil
	default:
		return nil, domain.NewBadRequestError(domain.MsgInvalidShape, nil)
	}
}

// decodeDraft decodes one batch element, which must be a JSON object.
func decodeDraft(data json.RawMessage) (*domain.EmployeeDraft, error) {
	if shapeOf(data) != shapeObject {
		return nil, domain.NewBadRequestError(domain.MsgInvalidPayload,
			fmt.Errorf("expected an object, got %.20s", data))
	}
	var d domain.EmployeeDraft
	if err := shared.DecodeJSON(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// decodePatch decodes an update body. An empty body yields a nil patch,
// which leaves the record unchanged.
func decodePatch(data json.RawMessage) (*domain.EmployeePatch, error) {
	switch shapeOf(data) {
	case shapeEmpty:
		return nil, nil
	case shapeObject:
		var p domain.EmployeePatch
		if err := shared.DecodeJSON(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	default:
		return nil, domain.NewBadRequestError(domain.MsgInvalidPayload,
			fmt.Errorf("update body must be an object, got %.20s", data))
	}
}
