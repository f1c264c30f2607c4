package lthreads

import (
	"errors"
	"math/bits"

	"github.com/hbreactor/lthreads/internal"
	"github.com/valyala/bytebufferpool"
)

// ErrInvalidAllocSize is returned by Arena.Allocate for a negative size.
var ErrInvalidAllocSize = errors.New("lthreads: invalid allocation size")

const (
	// minAllocClass is the smallest size class an Arena hands out. It
	// keeps tiny, frequent allocations (Event pointers, subscription
	// nodes) from thrashing a fresh bytebufferpool.Pool bucket on every
	// call.
	minAllocClass = 64

	// maxPooledClass bounds size-class recycling. Requests above it get
	// their own one-off class: an unbounded number of size classes
	// would let a single oversized request pin an entire
	// bytebufferpool bucket for the arena's lifetime.
	maxPooledClass = 1 << 20
)

// Block is a handle to one Arena-owned allocation. Data is exactly the
// requested number of bytes; class records the size class Data was
// carved from and must be passed back to Deallocate, since Go slices
// have no addressable header to hide that bookkeeping in.
type Block struct {
	Data  []byte
	class int
}

// Arena is a per-thread memory resource with two operations: Allocate
// and Deallocate. Allocation is monotonic within a size class, with
// size-class recycling on Deallocate; classes are fronted by their own
// bytebufferpool.Pool, so a size class that is never freed never grows
// beyond what was actually requested of it, and a size class under
// steady load stops allocating entirely once its pool is warm.
//
// An Arena is meant to be owned by a single thread of control: nothing
// in this package makes it safe to share one Arena across goroutines
// running concurrently.
type Arena struct {
	classes map[int]*bytebufferpool.Pool
}

// NewArena constructs an empty Arena. Size classes are created lazily
// on first use.
func NewArena() *Arena {
	return &Arena{classes: make(map[int]*bytebufferpool.Pool)}
}

// classFor rounds size up to its size class: the next power of two, no
// smaller than minAllocClass, or size itself once it exceeds
// maxPooledClass.
func classFor(size int) int {
	if size <= minAllocClass {
		assertf(internal.IsPowerOfTwo(minAllocClass), "lthreads: minAllocClass must be a power of two")
		return minAllocClass
	}
	if size > maxPooledClass {
		return size
	}
	class := 1 << bits.Len(uint(size-1))
	assertf(internal.IsPowerOfTwo(class), "lthreads: computed size class %d is not a power of two", class)
	return class
}

func (a *Arena) poolFor(class int) *bytebufferpool.Pool {
	p, ok := a.classes[class]
	if !ok {
		p = new(bytebufferpool.Pool)
		a.classes[class] = p
	}
	return p
}

// Allocate returns a Block of exactly size bytes, drawn from the free
// list of size's class or grown fresh if that list is empty.
func (a *Arena) Allocate(size int) (*Block, error) {
	if size < 0 {
		return nil, ErrInvalidAllocSize
	}

	class := classFor(size)
	pool := a.poolFor(class)

	bb := pool.Get()
	if cap(bb.B) < class {
		bb.B = make([]byte, class)
	} else {
		bb.B = bb.B[:class]
	}

	return &Block{Data: bb.B[:size], class: class}, nil
}

// Deallocate returns block to its size class's free list. Deallocating
// nil is a no-op. Deallocating the same block twice is a caller error;
// in debug builds it is asserted against (see debug.go).
func (a *Arena) Deallocate(block *Block) {
	if block == nil {
		return
	}
	assertf(block.class > 0, "lthreads: double deallocate of arena block")

	pool := a.poolFor(block.class)
	pool.Put(&bytebufferpool.ByteBuffer{B: block.Data[:block.class]})
	block.class = 0
	block.Data = nil
}
