package boxarena

import "unsafe"

// Optional is a container holding either a T or nothing.
// It is the source storage for Arena.TryBox.
type Optional[T any] struct {
	val T
	ok  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{val: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o *Optional[T]) IsSome() bool {
	return o.ok
}

// Get returns the contained value, leaving it in place.
func (o *Optional[T]) Get() (v T, ok bool) {
	return o.val, o.ok
}

// Take moves the contained value out and leaves the container empty.
func (o *Optional[T]) Take() (v T, ok bool) {
	v, ok = o.val, o.ok
	o.Clear()
	return v, ok
}

func (o *Optional[T]) Set(v T) {
	o.val = v
	o.ok = true
}

// Clear empties the container. The stored value is zeroed in place so it no
// longer keeps anything reachable.
func (o *Optional[T]) Clear() {
	clear(unsafe.Slice(&o.val, 1))
	o.ok = false
}
