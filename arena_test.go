package lthreads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAllocateExactSize(t *testing.T) {
	assert := assert.New(t)

	a := NewArena()
	block, err := a.Allocate(10)
	assert.NoError(err)
	assert.Len(block.Data, 10)
}

func TestArenaAllocateRejectsNegativeSize(t *testing.T) {
	assert := assert.New(t)

	a := NewArena()
	block, err := a.Allocate(-1)
	assert.ErrorIs(err, ErrInvalidAllocSize)
	assert.Nil(block)
}

func TestArenaSizeClassRounding(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(minAllocClass, classFor(1))
	assert.Equal(minAllocClass, classFor(minAllocClass))
	assert.Equal(128, classFor(minAllocClass+1))
	assert.Equal(1024, classFor(1000))
	// Above maxPooledClass, classFor stops rounding and hands the exact
	// size back, since a one-off class of its own beats growing a pool
	// bucket that will never be reused at that size.
	assert.Equal(maxPooledClass+1, classFor(maxPooledClass+1))
}

func TestArenaDeallocateRecyclesBySizeClass(t *testing.T) {
	assert := assert.New(t)

	a := NewArena()
	first, err := a.Allocate(100)
	assert.NoError(err)
	firstData := first.Data
	a.Deallocate(first)

	second, err := a.Allocate(100)
	assert.NoError(err)
	// Both allocations fall in the same size class (128), so the second
	// block carries that class's capacity whether the pool hands back the
	// backing array the first Deallocate returned or a freshly grown one.
	assert.Equal(cap(firstData), cap(second.Data))
}

func TestArenaDeallocateNilIsNoOp(t *testing.T) {
	a := NewArena()
	a.Deallocate(nil)
}

func TestReactorTracksOneStackBlockPerCoroutine(t *testing.T) {
	assert := assert.New(t)

	backend := newRecordingBackend()
	arena := NewArena()
	r := NewReactor(arena, backend)

	co := waiterCoroutine()

	assert.NoError(r.Monitor(1, co))
	assert.Len(arena.classes, 1)
	block, tracked := r.stacks[co]
	assert.True(tracked)
	assert.Len(block.Data, co.StackSize())

	// Monitoring a second descriptor for the same coroutine must not
	// draw a second block.
	assert.NoError(r.Monitor(2, co))
	assert.Same(block, r.stacks[co])

	assert.NoError(r.RemoveThread(co))
	_, stillTracked := r.stacks[co]
	assert.False(stillTracked)
}
