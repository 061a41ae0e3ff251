package block

import "unsafe"

// zeroBase is the address shared by every zero-sized block.
// Its element type gives it the largest alignment a zero-sized type can ask for.
var zeroBase [0]uint64

// Zero hands out blocks for zero-sized types without requesting any memory.
// All blocks share one address, so block identity is meaningless for such types.
type Zero[T any] struct{}

func (Zero[T]) Layout() Layout { return LayoutOf[T]() }

func (Zero[T]) Kind() Kind { return KindZero }

func (Zero[T]) Alloc() *T { return (*T)(unsafe.Pointer(&zeroBase)) }

func (Zero[T]) Free(*T) {}

func (Zero[T]) Clear(*T) {}
