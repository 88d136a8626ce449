package models

// Nullable distinguishes an absent field from an explicit null in partial updates.
// Set reports presence; a nil Value with Set=true clears the target.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a set Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a set Nullable that clears its target.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Or returns the held value, or def when unset or null.
func (n Nullable[T]) Or(def T) T {
	if !n.Set || n.Value == nil {
		return def
	}
	return *n.Value
}
