package kernel

// Nullable distinguishes three states a patch field can be in: not
// provided at all, explicitly null, or set to a value. Partial updates use
// it where null is itself meaningful (driverId null means "unassigned").
type Nullable[T any] struct {
	value     T
	specified bool
	valid     bool
}

// Unspecified is the zero value: the caller did not mention the field.
func Unspecified[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Null marks the field as explicitly cleared.
func Null[T any]() Nullable[T] {
	return Nullable[T]{specified: true}
}

// Value marks the field as set to v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, specified: true, valid: true}
}

func (n Nullable[T]) IsSpecified() bool {
	return n.specified
}

func (n Nullable[T]) IsNull() bool {
	return n.specified && !n.valid
}

// Get returns the value and whether one is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.valid
}

// Ptr returns nil for null/unspecified, otherwise a pointer to a copy.
func (n Nullable[T]) Ptr() *T {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}
