package block

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mapped allocates every block in its own anonymous private mapping.
//
// Mapped memory is not part of the Go heap and is never scanned by the GC, so
// T must not contain pointers. New enforces this.
type Mapped[T any] struct {
	layout Layout
	length int // Mapping length: layout.Size rounded up to the page size.
	logger *slog.Logger
	live   atomic.Int64
}

func NewMapped[T any](logger *slog.Logger) *Mapped[T] {
	if logger == nil {
		logger = slog.Default()
	}
	layout := LayoutOf[T]()
	page := unix.Getpagesize()
	return &Mapped[T]{
		layout: layout,
		// Mappings are page aligned, which covers any alignment a Go type can ask for.
		length: (int(layout.Size) + page - 1) &^ (page - 1),
		logger: logger,
	}
}

func (m *Mapped[T]) Layout() Layout { return m.layout }

func (m *Mapped[T]) Kind() Kind { return KindMapped }

// Alloc maps a fresh zeroed block.
// It panics if the mapping fails, as the runtime does when the heap is exhausted.
func (m *Mapped[T]) Alloc() *T {
	data, err := unix.Mmap(-1, 0, m.length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		panic(fmt.Errorf("cannot allocate %d bytes via mmap for block %v: %w", m.length, m.layout, err))
	}
	m.live.Add(1)
	return (*T)(unsafe.Pointer(&data[0]))
}

// Free unmaps a block. Failures are logged; the block is lost either way.
func (m *Mapped[T]) Free(p *T) {
	data := unsafe.Slice((*byte)(unsafe.Pointer(p)), m.length)
	if err := unix.Munmap(data); err != nil {
		m.logger.Error("failed to unmap block", "layout", m.layout, "error", err)
		return
	}
	m.live.Add(-1)
}

// Clear is a no-op: mapped blocks hold no references.
func (m *Mapped[T]) Clear(*T) {}

// Live returns the number of blocks currently mapped.
func (m *Mapped[T]) Live() int {
	return int(m.live.Load())
}
