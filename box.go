package boxarena

import (
	"unsafe"

	"github.com/holmberd/go-boxarena/internal/block"
)

// Box is an owned handle to a single heap-resident T.
//
// A Box owns its block until it is passed to Arena.Unbox or released. Copying
// a Box copies the handle, not the value; only one copy may be unboxed or
// released. The zero Box is nil.
type Box[T any] struct {
	ptr   *T
	alloc block.Allocator[T] // Allocator the block came from; frees must go back to it.
}

// IsNil reports whether the box holds no block.
func (b Box[T]) IsNil() bool {
	return b.ptr == nil
}

// Ptr returns a pointer to the boxed value.
// The pointer must not be used after the box is unboxed or released.
func (b Box[T]) Ptr() *T {
	if b.ptr == nil {
		panic("boxarena: use of nil box")
	}
	return b.ptr
}

// Value returns a copy of the boxed value.
func (b Box[T]) Value() T {
	return *b.Ptr()
}

// Set overwrites the boxed value.
func (b Box[T]) Set(v T) {
	*b.Ptr() = v
}

// Addr returns the address of the block, or 0 for a nil box.
func (b Box[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(b.ptr))
}

// Release drops the value and returns the block to the allocator it came from
// instead of to an arena. It does nothing on a nil box.
func (b *Box[T]) Release() {
	if b.ptr == nil {
		return
	}
	b.alloc.Free(b.ptr)
	*b = Box[T]{}
}
