package model

import (
	"bytes"
	"encoding/json"
)

// Nullable is an optional JSON field that keeps "absent" apart from an
// explicit null. Set is true whenever the key was present in the payload;
// Value is nil when that key carried null.
type Nullable[T any] struct {
	Value *T
	Set   bool
}

// NullableOf returns a supplied, non-null field.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Value: &v, Set: true}
}

// Null returns a supplied field that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only called for keys present in the payload.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON writes the value or null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// column returns the value to write and whether to write it at all.
func (n Nullable[T]) column() (any, bool) {
	if !n.Set {
		return nil, false
	}
	if n.Value == nil {
		return nil, true
	}
	return *n.Value, true
}
