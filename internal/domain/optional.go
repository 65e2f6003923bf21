package domain

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that was
// explicitly set to null. Set is false when the field never appeared in
// the payload; when Set is true, a nil Value means an explicit null.
//
// Partial movie updates depend on this distinction: absent means "leave
// unchanged" while null clears the field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some builds an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null builds an Optional representing an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for fields present in the payload, so Set
// is unconditionally true here.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}
