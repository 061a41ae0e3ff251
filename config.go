package boxarena

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/holmberd/go-boxarena/internal/block"
)

// Backend selects where an arena's blocks are allocated.
type Backend int

const (
	// BackendHeap allocates blocks on the Go heap. Any T is supported.
	BackendHeap Backend = iota

	// BackendMapped allocates each block in an anonymous mapping outside the
	// Go heap, which the GC never scans. T must not contain pointers.
	BackendMapped
)

func (b Backend) String() string {
	switch b {
	case BackendHeap:
		return "heap"
	case BackendMapped:
		return "mapped"
	default:
		return fmt.Sprintf("Backend(%d)", b)
	}
}

func (b Backend) kind() (block.Kind, bool) {
	switch b {
	case BackendHeap:
		return block.KindHeap, true
	case BackendMapped:
		return block.KindMapped, true
	default:
		return 0, false
	}
}

type Config struct {
	Capacity int     // Number of free blocks allocated up front.
	Backend  Backend // Where blocks are allocated.

	// VerifyReuse records a checksum of every block as it enters the free list
	// and checks it when the block is reused. A mismatch means the block was
	// written through a stale pointer after Unbox, and the arena panics with
	// ErrBlockModified. It costs a hash of the block on every Unbox and reuse.
	VerifyReuse bool

	Logger *slog.Logger // Defaults to slog.Default().
}

func DefaultConfig() Config {
	return Config{
		Capacity: 0,           // No blocks are allocated until the first Box.
		Backend:  BackendHeap, // Works for any T.
		Logger:   slog.Default(),
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 0 {
		errs = append(errs, fmt.Errorf("invalid config: %w (got %d)", ErrNegativeCapacity, c.Capacity))
	}
	if _, ok := c.Backend.kind(); !ok {
		errs = append(errs, fmt.Errorf("invalid config: %w: %v", ErrUnknownBackend, c.Backend))
	}
	return errors.Join(errs...)
}
