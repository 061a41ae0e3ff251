package block

// Heap allocates blocks on the Go heap.
// Freed blocks are zeroed and left to the garbage collector.
type Heap[T any] struct{}

func (Heap[T]) Layout() Layout { return LayoutOf[T]() }

func (Heap[T]) Kind() Kind { return KindHeap }

func (Heap[T]) Alloc() *T { return new(T) }

func (Heap[T]) Free(p *T) { clearBlock(p) }

// Clear zeroes the block so values it referenced become collectable while it
// sits on a free list.
func (Heap[T]) Clear(p *T) { clearBlock(p) }
