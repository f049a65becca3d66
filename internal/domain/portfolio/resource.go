package portfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Shape records how a payload arrived on the wire.
type Shape int

const (
	// ShapeSingle is a bare JSON object.
	ShapeSingle Shape = iota
	// ShapeCollection is a JSON array.
	ShapeCollection
)

func (s Shape) String() string {
	if s == ShapeCollection {
		return "collection"
	}
	return "single"
}

// ErrEmptyPayload is returned when the body carries no JSON value.
var ErrEmptyPayload = errors.New("empty payload")

// Resource is a tagged result for endpoints that may answer with either one
// record or a list of them. Items always holds every record received.
type Resource[T any] struct {
	Shape Shape
	Items []T
}

// Single wraps one record.
func Single[T any](item T) Resource[T] {
	return Resource[T]{Shape: ShapeSingle, Items: []T{item}}
}

// Collection wraps a list of records.
func Collection[T any](items []T) Resource[T] {
	if items == nil {
		items = []T{}
	}
	return Resource[T]{Shape: ShapeCollection, Items: items}
}

// DecodeResource inspects the first JSON token and decodes accordingly.
func DecodeResource[T any](data []byte) (Resource[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Resource[T]{}, ErrEmptyPayload
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Resource[T]{}, fmt.Errorf("decode collection: %w", err)
		}
		return Collection(items), nil
	}
	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return Resource[T]{}, fmt.Errorf("decode single: %w", err)
	}
	return Single(item), nil
}

// First returns the first record, if any.
func (r Resource[T]) First() (T, bool) {
	if len(r.Items) == 0 {
		var zero T
		return zero, false
	}
	return r.Items[0], true
}

// Len reports the number of records.
func (r Resource[T]) Len() int { return len(r.Items) }
