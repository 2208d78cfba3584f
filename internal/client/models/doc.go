// Package models defines the client-side entities of the voice memo library:
// recordings with their markers, folders, sharing records, comments, the
// application settings and the signed-in user.
//
// Entities are plain values. Stores hand out deep copies, so callers may
// modify what they receive without affecting store state. Partial updates
// are expressed with patch types whose nil fields mean "leave unchanged".
package models

// Ptr returns a pointer to v. Handy for building patches and filters.
func Ptr[T any](v T) *T { return &v }

// Field is a patch slot for values that are themselves nullable: Set tells
// whether the field is being changed, Value is the new value.
type Field[T any] struct {
	Value T
	Set   bool
}

// SetTo returns a Field that sets the value to v.
func SetTo[T any](v T) Field[T] { return Field[T]{Value: v, Set: true} }
