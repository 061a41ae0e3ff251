package boxarena_test

import (
	"fmt"

	boxarena "github.com/holmberd/go-boxarena"
)

func Example() {
	// Prepare a long-lived arena.
	ba := boxarena.New[[0x1000]byte]()

	// Instead of allocating a new block per value, box through the arena.
	var big [0x1000]byte
	big[0] = 1
	b := ba.Box(big)
	fmt.Println(b.Value()[0], ba.Capacity())

	// Instead of dropping the box, unbox it; the block stays for the next Box.
	big = ba.Unbox(&b)
	fmt.Println(big[0], ba.Capacity())

	b = ba.Box(big)
	fmt.Println(ba.Capacity())
	// Output:
	// 1 0
	// 1 1
	// 0
}

func ExampleArena_TryBox() {
	ba := boxarena.WithCapacity[int](1)

	src := boxarena.Some(42)
	if b, ok := ba.TryBox(&src); ok {
		fmt.Println(b.Value(), src.IsSome(), ba.Capacity())
	}

	src = boxarena.Some(43)
	if _, ok := ba.TryBox(&src); !ok {
		// No free block left; fall back to Box.
		b := ba.Box(43)
		fmt.Println(b.Value())
	}
	// Output:
	// 42 false 0
	// 43
}

func ExampleCustom() {
	config := boxarena.DefaultConfig()
	config.Backend = boxarena.BackendMapped
	config.Capacity = 4

	ba, err := boxarena.Custom[[16]uint64](config)
	if err != nil {
		panic(err)
	}
	defer ba.Close()

	b := ba.Box([16]uint64{7})
	fmt.Println(b.Value()[0], ba.Capacity())
	b.Release()

	_, err = boxarena.Custom[*int](config)
	fmt.Println(err)
	// Output:
	// 7 3
	// invalid config: type contains pointers and cannot be stored in mapped memory: *int
}
