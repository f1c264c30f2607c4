package lthreads

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSub(fd int) subscription {
	co := NewCoroutineFunc(func(co *Coroutine) { co.Wait() })
	return subscription{fd: fd, co: co}
}

func TestSubscriptionSetInsertIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	set := newSubscriptionSet(bySocketLess)
	sub := newTestSub(3)

	assert.True(set.insert(sub))
	assert.False(set.insert(sub))
	assert.Equal(1, set.size())
}

func TestSubscriptionSetOrderingBySocket(t *testing.T) {
	assert := assert.New(t)

	set := newSubscriptionSet(bySocketLess)
	subs := []subscription{newTestSub(5), newTestSub(1), newTestSub(3), newTestSub(1)}
	for _, s := range subs {
		set.insert(s)
	}

	assert.True(sort.SliceIsSorted(set.items, func(i, j int) bool {
		return bySocketLess(set.items[i], set.items[j])
	}))

	lo, hi := set.fdRange(1)
	assert.Equal(2, hi-lo)
	for _, it := range set.items[lo:hi] {
		assert.Equal(1, it.fd)
	}
}

func TestSubscriptionSetCoroutineRange(t *testing.T) {
	assert := assert.New(t)

	set := newSubscriptionSet(byCoroutineLess)
	co := NewCoroutineFunc(func(co *Coroutine) { co.Wait() })

	set.insert(subscription{fd: 1, co: co})
	set.insert(subscription{fd: 2, co: co})
	set.insert(subscription{fd: 3, co: NewCoroutineFunc(func(co *Coroutine) { co.Wait() })})

	lo, hi := set.coroutineRange(co)
	assert.Equal(2, hi-lo)
}

func TestSubscriptionSetEraseRange(t *testing.T) {
	assert := assert.New(t)

	set := newSubscriptionSet(bySocketLess)
	set.insert(newTestSub(1))
	set.insert(newTestSub(1))
	set.insert(newTestSub(2))

	lo, hi := set.fdRange(1)
	removed := set.eraseRange(lo, hi)
	assert.Len(removed, 2)
	assert.Equal(1, set.size())
	assert.Equal(2, set.items[0].fd)
}

// TestDualSetCoherence exercises dual-set coherence: every element of
// the by-fd set has a mirror in the by-coroutine set with
// the same (fd, coroutine), and vice versa, after a random sequence of
// inserts and erases performed on both sets in lockstep.
func TestDualSetCoherence(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(42))
	bySocket := newSubscriptionSet(bySocketLess)
	byCoroutine := newSubscriptionSet(byCoroutineLess)

	coroutines := make([]*Coroutine, 5)
	for i := range coroutines {
		coroutines[i] = NewCoroutineFunc(func(co *Coroutine) { co.Wait() })
	}

	for i := 0; i < 500; i++ {
		fd := rng.Intn(4)
		co := coroutines[rng.Intn(len(coroutines))]
		sub := subscription{fd: fd, co: co}

		if rng.Intn(2) == 0 {
			bySocket.insert(sub)
			byCoroutine.insert(sub)
		} else {
			bySocket.erase(sub)
			byCoroutine.erase(sub)
		}

		assert.Equal(bySocket.size(), byCoroutine.size())

		seenSocket := map[[2]uintptr]bool{}
		for _, it := range bySocket.items {
			seenSocket[[2]uintptr{uintptr(it.fd), identity(it.co)}] = true
		}
		seenCoroutine := map[[2]uintptr]bool{}
		for _, it := range byCoroutine.items {
			seenCoroutine[[2]uintptr{uintptr(it.fd), identity(it.co)}] = true
		}
		assert.Equal(seenSocket, seenCoroutine)
	}
}
