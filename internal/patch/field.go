// Package patch decodes sparse JSON update bodies. A Field records whether its key was
// present at all and, if so, whether it carried an explicit null, so "leave unchanged" and
// "clear" stay distinguishable.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked by encoding/json when the key exists in the document,
// including when its value is null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Ptr returns nil for an explicit null and a pointer to the value otherwise.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Updates collects column assignments for present fields, ready for gorm's Updates.
type Updates map[string]interface{}

// Nullable assigns the column when the field is present; explicit null writes NULL.
func Nullable[T any](u Updates, column string, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		u[column] = nil
		return
	}
	u[column] = f.Value
}

// Required assigns the column when the field is present and rejects explicit null.
func Required[T any](u Updates, column string, f Field[T]) error {
	if !f.Set {
		return nil
	}
	if f.Null {
		return &NullError{Column: column}
	}
	u[column] = f.Value
	return nil
}

type NullError struct {
	Column string
}

func (e *NullError) Error() string {
	return fmt.Sprintf("%s cannot be null", e.Column)
}

// Map converts a field's value while keeping its presence and null flags.
func Map[T, U any](f Field[T], fn func(T) U) Field[U] {
	out := Field[U]{Set: f.Set, Null: f.Null}
	if f.Set && !f.Null {
		out.Value = fn(f.Value)
	}
	return out
}
