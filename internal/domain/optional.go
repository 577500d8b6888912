package domain

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON key was present, whether it was an explicit
// null, and otherwise its value. The zero value is absent.
//
// encoding/json never calls UnmarshalJSON for a missing key, so a field of
// this type stays absent unless the payload mentions it.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// Present reports whether the key appeared in the payload.
func (o Optional[T]) Present() bool {
	return o.present
}

// IsNull reports whether the key appeared with an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the value and true when the key was present and not null.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}
