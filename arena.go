// Package boxarena implements a reuse pool for boxed values of a single type.
//
// An Arena keeps the blocks of unboxed values on a free list and hands them out
// again on the next Box, so a program that repeatedly boxes and discards values
// of the same type stops paying for a fresh allocation each time:
//
//	ba := boxarena.New[[0x1000]byte]()
//	b := ba.Box(bigValue) // instead of allocating a new block
//	v := ba.Unbox(&b)     // the block stays in ba for the next Box
//
// An Arena is not safe for concurrent use. Callers sharing one must serialize access.
package boxarena

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/holmberd/go-boxarena/internal/block"
)

var (
	ErrNegativeCapacity = errors.New("capacity must not be negative")
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrPointerType      = block.ErrPointerType
	ErrBlockModified    = errors.New("block was modified after unbox")
)

// Stats represents arena stats.
type Stats struct {
	Capacity int    // Free blocks currently held.
	Allocs   uint64 // Blocks requested from the allocator.
	Reuses   uint64 // Boxes served from the free list.
	Unboxes  uint64 // Blocks taken back by Unbox.
	Releases uint64 // Blocks handed back to the allocator by resizing or Close.
}

func (s *Stats) Reset() {
	*s = Stats{}
}

// Arena is a free list of uninitialized blocks, each sized and aligned for one T.
type Arena[T any] struct {
	alloc  block.Allocator[T]
	free   *freeList[T]
	logger *slog.Logger
	stats  Stats
}

func newArena[T any](alloc block.Allocator[T], config Config) *Arena[T] {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &Arena[T]{
		alloc:  alloc,
		free:   newFreeList(alloc, config.VerifyReuse),
		logger: logger,
	}
	if alloc.Kind() == block.KindMapped {
		// Mapped blocks are invisible to the GC; unmap them if the arena is
		// dropped without Close.
		runtime.AddCleanup(a, func(f *freeList[T]) { f.release() }, a.free)
	}
	if config.Capacity > 0 {
		a.ResizeCapacity(config.Capacity)
	}
	return a
}

func heapArena[T any](capacity int) *Arena[T] {
	alloc, err := block.New[T](block.KindHeap, nil)
	if err != nil {
		panic(err) // Heap allocators accept every type.
	}
	config := DefaultConfig()
	config.Capacity = capacity
	return newArena(alloc, config)
}

// New creates an empty heap-backed arena. No allocation is made.
func New[T any]() *Arena[T] {
	return heapArena[T](0)
}

// WithCapacity creates a heap-backed arena holding n free blocks.
// It panics if n is negative.
func WithCapacity[T any](n int) *Arena[T] {
	if n < 0 {
		panic(fmt.Sprintf("boxarena: negative capacity %d", n))
	}
	return heapArena[T](n)
}

// Custom creates an arena from config.
func Custom[T any](config Config) (*Arena[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	kind, _ := config.Backend.kind()
	alloc, err := block.New[T](kind, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return newArena(alloc, config), nil
}

// Box moves v into a block and returns the owning handle.
// The most recently freed block is reused if there is one; otherwise a fresh
// block is allocated.
func (a *Arena[T]) Box(v T) Box[T] {
	p, ok := a.free.pop()
	if ok {
		a.stats.Reuses++
	} else {
		p = a.alloc.Alloc()
		a.stats.Allocs++
	}
	*p = v
	return Box[T]{ptr: p, alloc: a.alloc}
}

// Unbox moves the value out of b and keeps its block for reuse.
// b is left nil. It panics if b is nil or was not produced by an arena of the
// same backend.
func (a *Arena[T]) Unbox(b *Box[T]) T {
	if b == nil || b.ptr == nil {
		panic("boxarena: unbox of nil box")
	}
	if k := b.alloc.Kind(); k != a.alloc.Kind() {
		panic(fmt.Sprintf("boxarena: unbox of %v block into %v arena", k, a.alloc.Kind()))
	}
	p := b.ptr
	*b = Box[T]{}

	v := *p
	a.alloc.Clear(p)
	a.free.push(p)
	a.stats.Unboxes++
	return v
}

// TryBox moves the value held by src into a reused block, but only if src
// holds a value and a free block is available. Otherwise it returns false and
// leaves src untouched.
//
// On success the value is copied straight from src's storage into the block and
// src is left empty, so no intermediate T is placed on the stack whatever its
// size. The value is relocated by plain assignment: T must not carry state that
// a copy would break, such as a held sync.Mutex or pointers into itself.
func (a *Arena[T]) TryBox(src *Optional[T]) (Box[T], bool) {
	if src == nil || !src.ok || a.free.len() == 0 {
		return Box[T]{}, false
	}
	p, _ := a.free.pop()
	*p = src.val
	src.Clear()
	a.stats.Reuses++
	return Box[T]{ptr: p, alloc: a.alloc}, true
}

// Capacity returns the number of free blocks in the arena.
func (a *Arena[T]) Capacity() int {
	return a.free.len()
}

// ResizeCapacity releases or allocates free blocks until exactly n remain.
// Excess blocks are released most recently added first.
// It panics if n is negative.
func (a *Arena[T]) ResizeCapacity(n int) {
	if n < 0 {
		panic(fmt.Sprintf("boxarena: negative capacity %d", n))
	}
	released := a.free.truncate(n)
	allocated := 0
	for a.free.len() < n {
		a.free.push(a.alloc.Alloc())
		allocated++
	}
	a.stats.Releases += uint64(released)
	a.stats.Allocs += uint64(allocated)
	a.logger.Debug("resized arena",
		"capacity", n, "released", released, "allocated", allocated, "backend", a.alloc.Kind())
}

// Trim shrinks the arena to n free blocks if it holds more. It never grows it.
func (a *Arena[T]) Trim(n int) {
	if a.free.len() > n {
		a.ResizeCapacity(n)
	}
}

// Close releases every free block to the allocator. Boxes held by callers are
// not affected. The arena stays usable and starts over empty.
func (a *Arena[T]) Close() {
	a.stats.Releases += uint64(a.free.release())
}

// UpdateStats adds the arena's counters to s.
func (a *Arena[T]) UpdateStats(s *Stats) {
	s.Capacity += a.free.len()
	s.Allocs += a.stats.Allocs
	s.Reuses += a.stats.Reuses
	s.Unboxes += a.stats.Unboxes
	s.Releases += a.stats.Releases
}
