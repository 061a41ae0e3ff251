package boxarena

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/holmberd/go-boxarena/internal/block"
)

// freeList holds the uninitialized blocks an arena owns.
// The last element is the most recently added block and the first to be reused.
type freeList[T any] struct {
	alloc  block.Allocator[T]
	blocks []*T

	// sums holds a checksum of each block taken when it was pushed.
	// It is parallel to blocks and only maintained when verify is set.
	sums   []uint64
	verify bool
}

func newFreeList[T any](alloc block.Allocator[T], verify bool) *freeList[T] {
	return &freeList[T]{
		alloc:  alloc,
		verify: verify && alloc.Layout().Size > 0,
	}
}

func (f *freeList[T]) len() int {
	return len(f.blocks)
}

func (f *freeList[T]) push(p *T) {
	f.blocks = append(f.blocks, p)
	if f.verify {
		f.sums = append(f.sums, xxhash.Sum64(block.Bytes(p)))
	}
}

// pop removes the most recently added block.
// It panics with ErrBlockModified if verification is on and the block's bytes
// changed while it was on the list.
func (f *freeList[T]) pop() (*T, bool) {
	n := len(f.blocks) - 1
	if n < 0 {
		return nil, false
	}
	p := f.blocks[n]
	f.blocks[n] = nil
	f.blocks = f.blocks[:n]
	if f.verify {
		sum := f.sums[n]
		f.sums = f.sums[:n]
		if got := xxhash.Sum64(block.Bytes(p)); got != sum {
			panic(fmt.Errorf("%w: block %p checksum %#x, expected %#x", ErrBlockModified, p, got, sum))
		}
	}
	return p, true
}

// truncate releases the most recently added blocks until at most n remain.
// It returns the number of blocks released.
func (f *freeList[T]) truncate(n int) int {
	released := 0
	for len(f.blocks) > n {
		last := len(f.blocks) - 1
		f.alloc.Free(f.blocks[last])
		f.blocks[last] = nil
		f.blocks = f.blocks[:last]
		released++
	}
	if f.verify {
		f.sums = f.sums[:len(f.blocks)]
	}
	return released
}

// release hands every block back to the allocator.
func (f *freeList[T]) release() int {
	n := f.truncate(0)
	f.blocks = nil
	f.sums = nil
	return n
}
