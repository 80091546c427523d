// Package patch models optional update fields that distinguish
// "leave unchanged" from "clear" from "set to a value".
package patch

// Field is a tri-state update for an optional value. The zero value means
// the field was absent from the update and must be left unchanged.
type Field[T any] struct {
	present bool
	value   *T
}

// Set returns a field that assigns v
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: &v}
}

// Clear returns a field that removes the current value
func Clear[T any]() Field[T] {
	return Field[T]{present: true}
}

// Unchanged returns an absent field. Equivalent to the zero value.
func Unchanged[T any]() Field[T] {
	return Field[T]{}
}

// IsPresent reports whether the update touches this field at all
func (f Field[T]) IsPresent() bool {
	return f.present
}

// IsSet reports whether the update assigns a value
func (f Field[T]) IsSet() bool {
	return f.present && f.value != nil
}

// IsClear reports whether the update removes the value
func (f Field[T]) IsClear() bool {
	return f.present && f.value == nil
}

// Value returns the assigned value and whether one was assigned
func (f Field[T]) Value() (T, bool) {
	if !f.IsSet() {
		var zero T
		return zero, false
	}
	return *f.value, true
}

// Apply resolves the field against the current value held in a pointer:
// absent keeps current, clear yields nil, set yields a pointer to a copy.
func (f Field[T]) Apply(current *T) *T {
	switch {
	case !f.present:
		return current
	case f.value == nil:
		return nil
	default:
		v := *f.value
		return &v
	}
}
