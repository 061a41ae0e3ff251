package block

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

func TestMapped(t *testing.T) {
	t.Run("Alloc returns a zeroed, page aligned block", func(t *testing.T) {
		m := NewMapped[[3]uint64](nil)
		p := m.Alloc()
		defer m.Free(p)

		if addr := uintptr(unsafe.Pointer(p)); addr%uintptr(unix.Getpagesize()) != 0 {
			t.Errorf("expected page aligned block, got %#x", addr)
		}
		if *p != [3]uint64{} {
			t.Errorf("expected zeroed block, got %v", *p)
		}
		p[2] = 0x1234
		if p[2] != 0x1234 {
			t.Errorf("expected written value 0x1234, got %#x", p[2])
		}
	})

	t.Run("Mapping length is rounded up to the page size", func(t *testing.T) {
		page := unix.Getpagesize()
		small := NewMapped[uint32](nil)
		if small.length != page {
			t.Errorf("expected length %d for small block, got %d", page, small.length)
		}
		large := NewMapped[[0x2001]byte](nil)
		want := (0x2001 + page - 1) / page * page
		if large.length != want {
			t.Errorf("expected length %d for large block, got %d", want, large.length)
		}
	})

	t.Run("Free releases the mapping", func(t *testing.T) {
		m := NewMapped[int64](nil)
		blocks := make([]*int64, 8)
		for i := range blocks {
			blocks[i] = m.Alloc()
		}
		if live := m.Live(); live != len(blocks) {
			t.Fatalf("expected %d live blocks, got %d", len(blocks), live)
		}
		for _, p := range blocks {
			m.Free(p)
		}
		if live := m.Live(); live != 0 {
			t.Errorf("expected no live blocks after free, got %d", live)
		}
	})
}
