package board

import (
	"encoding/json"
	"fmt"
)

// Optional holds either a value of T or nothing.
// The zero Optional is None.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some wraps v.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }

// None returns an empty Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the wrapped value and whether there is one.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// IsNone reports whether o holds nothing.
func (o Optional[T]) IsNone() bool { return !o.ok }

func (o Optional[T]) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprint(o.v)
}

// MarshalJSON encodes None as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as None.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// OptionalEqual compares two optionals of a comparable type.
func OptionalEqual[T comparable](a, b Optional[T]) bool {
	if a.ok != b.ok {
		return false
	}
	return !a.ok || a.v == b.v
}
