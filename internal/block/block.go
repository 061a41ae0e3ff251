// Package block implements the layout-aware allocators that back an arena's free list.
//
// Every allocator is bound to a single type and therefore a single layout, so a
// block is always released with the size and alignment it was allocated with.
package block

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"unsafe"
)

var (
	ErrPointerType = errors.New("type contains pointers and cannot be stored in mapped memory")
	ErrUnknownKind = errors.New("unknown allocator kind")
)

// Layout describes the size and alignment of a block.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of a block holding one T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

func (l Layout) String() string {
	return fmt.Sprintf("size=%d align=%d", l.Size, l.Align)
}

type Kind int

const (
	KindHeap   Kind = iota // Blocks live on the Go heap.
	KindMapped             // Blocks live in anonymous mappings outside the Go heap.
	KindZero               // Zero-sized blocks; no memory is ever requested.
)

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindMapped:
		return "mapped"
	case KindZero:
		return "zero"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Allocator defines the contract for a source of uninitialized blocks of one type.
type Allocator[T any] interface {
	Layout() Layout // Returns the layout of every block handed out.
	Kind() Kind     // Returns where blocks are allocated.
	Alloc() *T      // Alloc returns a fresh block. It panics if memory cannot be obtained.
	Free(p *T)      // Free releases a block previously returned by Alloc.
	Clear(p *T)     // Clear drops whatever the block references before it is kept for reuse.
}

// New returns an allocator of the given kind for T.
// Zero-sized types always get a Zero allocator, whatever kind is requested.
func New[T any](kind Kind, logger *slog.Logger) (Allocator[T], error) {
	if LayoutOf[T]().Size == 0 {
		return Zero[T]{}, nil
	}
	switch kind {
	case KindHeap:
		return Heap[T]{}, nil
	case KindMapped:
		if t := reflect.TypeFor[T](); HasPointers(t) {
			return nil, fmt.Errorf("%w: %v", ErrPointerType, t)
		}
		return NewMapped[T](logger), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// HasPointers reports whether values of type t may hold pointers the garbage
// collector needs to see.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, strings, slices, maps, channels, funcs, interfaces and unsafe.Pointer.
		return true
	}
}

// Bytes returns the raw memory of a block.
func Bytes[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// clearBlock zeroes a block in place without materializing a T on the stack.
func clearBlock[T any](p *T) {
	clear(unsafe.Slice(p, 1))
}
