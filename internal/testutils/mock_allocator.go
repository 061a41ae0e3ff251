package testutils

import (
	"fmt"
	"sync/atomic"

	"github.com/holmberd/go-boxarena/internal/block"
)

// MockAllocator is a heap-backed block allocator that counts calls and
// panics on frees of blocks it does not own.
type MockAllocator[T any] struct {
	allocCalls atomic.Int64
	freeCalls  atomic.Int64
	clearCalls atomic.Int64
	live       map[*T]struct{}
}

func (m *MockAllocator[T]) Layout() block.Layout {
	return block.LayoutOf[T]()
}

func (m *MockAllocator[T]) Kind() block.Kind {
	return block.KindHeap
}

func (m *MockAllocator[T]) Alloc() *T {
	m.allocCalls.Add(1)
	if m.live == nil {
		m.live = make(map[*T]struct{})
	}
	p := new(T)
	m.live[p] = struct{}{}
	return p
}

func (m *MockAllocator[T]) Free(p *T) {
	m.freeCalls.Add(1)
	if _, ok := m.live[p]; !ok {
		panic(fmt.Sprintf("mock allocator: free of unknown block %p", p))
	}
	delete(m.live, p)
}

func (m *MockAllocator[T]) Clear(p *T) {
	m.clearCalls.Add(1)
	var zero T
	*p = zero
}

func (m *MockAllocator[T]) AllocCalls() int64 {
	return m.allocCalls.Load()
}

func (m *MockAllocator[T]) FreeCalls() int64 {
	return m.freeCalls.Load()
}

func (m *MockAllocator[T]) ClearCalls() int64 {
	return m.clearCalls.Load()
}

// BlocksInUse returns the number of blocks allocated and not yet freed.
func (m *MockAllocator[T]) BlocksInUse() int64 {
	return m.AllocCalls() - m.FreeCalls()
}

// Owns reports whether p is a live block handed out by this allocator.
func (m *MockAllocator[T]) Owns(p *T) bool {
	_, ok := m.live[p]
	return ok
}

func (m *MockAllocator[T]) Reset() {
	m.allocCalls.Store(0)
	m.freeCalls.Store(0)
	m.clearCalls.Store(0)
	m.live = nil
}
